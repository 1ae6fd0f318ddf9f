// Package news persists news items.
package news

import (
	"context"
	"database/sql"
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

const selectNews = `SELECT id, date, headline, content, tag, created_at FROM news
		ORDER BY date DESC, created_at DESC`

// List returns all items, most recent date first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.NewsItem, error) {
	rows, err := r.db.QueryContext(ctx, selectNews)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanAll(rows)
}

// Latest returns at most limit items, most recent date first.
func (r *PostgresRepository) Latest(ctx context.Context, limit int) ([]*models.NewsItem, error) {
	rows, err := r.db.QueryContext(ctx, selectNews+` LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanAll(rows)
}

func scanAll(rows *sql.Rows) ([]*models.NewsItem, error) {
	defer rows.Close()

	result := make([]*models.NewsItem, 0)
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(&n.ID, &n.Date, &n.Headline, &n.Content, &n.Tag, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.NewsItem) (*models.NewsItem, error) {
	query :=
		`INSERT INTO news (id, date, headline, content, tag, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `
	_, err := r.db.ExecContext(ctx, query, n.ID, n.Date, n.Headline, n.Content, string(n.Tag), n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
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
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM news`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
