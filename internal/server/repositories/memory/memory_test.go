package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repomanager.RepositoryManager = (*RepositoryManager)(nil)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPublications_OrderedByYearThenTimestamp(t *testing.T) {
	repo := NewRepositoryManager().Publications(nil)
	ctx := context.Background()

	for i, y := range []string{"2020", "2022", "2021", "2022"} {
		_, err := repo.Create(ctx, &models.Publication{ID: y + string(rune('a'+i)), Year: y, Timestamp: t0.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)

	var got []string
	for _, p := range list {
		got = append(got, p.ID)
	}
	assert.Equal(t, []string{"2022d", "2022b", "2021c", "2020a"}, got)
}

func TestNews_LatestIsNewestByDate(t *testing.T) {
	repo := NewRepositoryManager().News(nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := repo.Create(ctx, &models.NewsItem{ID: string(rune('a' + i)), Date: t0.AddDate(0, 0, i)})
		require.NoError(t, err)
	}

	latest, err := repo.Latest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, latest, 5)
	assert.Equal(t, "g", latest[0].ID)
	assert.Equal(t, "c", latest[4].ID)
}

func TestDelete_UnknownLeavesCollection(t *testing.T) {
	m := NewRepositoryManager()
	ctx := context.Background()

	_, err := m.People(nil).Create(ctx, &models.Person{ID: "p1"})
	require.NoError(t, err)

	assert.ErrorIs(t, m.People(nil).Delete(ctx, "p2"), common.ErrorNotFound)
	n, _ := m.People(nil).Count(ctx)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, m.Publications(nil).Delete(ctx, "x"), common.ErrorNotFound)
	assert.ErrorIs(t, m.News(nil).Delete(ctx, "x"), common.ErrorNotFound)
	assert.ErrorIs(t, m.ResearchAreas(nil).Delete(ctx, "x"), common.ErrorNotFound)
}

func TestAdmins(t *testing.T) {
	repo := NewRepositoryManager().Admins(nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Account{ID: "a1", Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Account{ID: "a2", Email: "a@b.com"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	a, err := repo.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, a.PasswordHash)

	a, err = repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "h", a.PasswordHash)
}

func TestHomePage_CreateIfAbsentKeepsFirst(t *testing.T) {
	repo := NewRepositoryManager().HomePage(nil)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.HomePage{}), common.ErrorNotFound)

	require.NoError(t, repo.CreateIfAbsent(ctx, &models.HomePage{SiteTitle: "first"}))
	require.NoError(t, repo.CreateIfAbsent(ctx, &models.HomePage{SiteTitle: "second"}))

	hp, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", hp.SiteTitle)
}
