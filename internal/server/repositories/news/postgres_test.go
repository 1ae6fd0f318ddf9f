package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

var cols = []string{"id", "date", "headline", "content", "tag", "created_at"}

const (
	listQ   = `(?s)^SELECT\s+id,\s*date,\s*headline,\s*content,\s*tag,\s*created_at\s+FROM\s+news\s+ORDER\s+BY\s+date\s+DESC,\s*created_at\s+DESC$`
	latestQ = `(?s)^SELECT\s+id,.*FROM\s+news\s+ORDER\s+BY\s+date\s+DESC,\s*created_at\s+DESC\s+LIMIT\s+\$1$`
	insertQ = `(?s)^INSERT\s+INTO\s+news\s*\(id,\s*date,\s*headline,\s*content,\s*tag,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*$`
)

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(listQ).WillReturnRows(sqlmock.NewRows(cols).
		AddRow("n2", d, "Grant", "We got it", "Funding", d).
		AddRow("n1", d.AddDate(0, -1, 0), "Talk", "At ACS", "Conference", d))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.TagFunding, got[0].Tag)
	assert.True(t, got[0].Date.After(got[1].Date))
}

func TestLatest_PassesLimit(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(latestQ).WithArgs(5).WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.Latest(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatest_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(latestQ).WithArgs(5).WillReturnError(errors.New("boom"))

	_, err := repo.Latest(context.Background(), 5)
	assert.ErrorContains(t, err, "db error: boom")
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	mock.ExpectExec(insertQ).
		WithArgs("n1", d, "Award", "Prize", "Award", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(context.Background(), &models.NewsItem{
		ID: "n1", Date: d, Headline: "Award", Content: "Prize", Tag: models.TagAward, CreatedAt: now,
	})
	require.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE FROM news WHERE id = \$1$`).WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), common.ErrorNotFound)
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT count\(\*\) FROM news$`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
