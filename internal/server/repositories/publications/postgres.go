// Package publications persists the group's publication list.
package publications

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/dbx"
	"github.com/dmitrijs2005/labsite/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all publications, newest year first; within a year the most
// recently added come first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Publication, error) {
	query := `SELECT id, authors, title, journal, year, "timestamp" FROM publications
		ORDER BY year DESC, "timestamp" DESC
		`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Publication, 0)
	for rows.Next() {
		var p models.Publication
		if err := rows.Scan(&p.ID, &p.Authors, &p.Title, &p.Journal, &p.Year, &p.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Publication) (*models.Publication, error) {
	query :=
		`INSERT INTO publications (id, authors, title, journal, year, "timestamp")
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Authors, p.Title, p.Journal, p.Year, p.Timestamp); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM publications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
