// Package homepage persists the singleton landing-page record. The table
// key is pinned to 1 so concurrent first reads cannot create two rows.
package homepage

import (
	"context"
	"database/sql"
	"errors"
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

const selectHomePage = `SELECT site_title, use_logo, logo_image, hero_title, hero_description,
		about_paragraph1, about_paragraph2, updated_at
		FROM homepage WHERE id = 1`

func (r *PostgresRepository) get(ctx context.Context, query string) (*models.HomePage, error) {
	hp := &models.HomePage{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&hp.SiteTitle, &hp.UseLogo, &hp.LogoImage, &hp.HeroTitle, &hp.HeroDescription,
		&hp.AboutParagraph1, &hp.AboutParagraph2, &hp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return hp, nil
}

// Get returns common.ErrorNotFound until the record has been created.
func (r *PostgresRepository) Get(ctx context.Context) (*models.HomePage, error) {
	return r.get(ctx, selectHomePage)
}

// GetForUpdate locks the row for the rest of the enclosing transaction.
func (r *PostgresRepository) GetForUpdate(ctx context.Context) (*models.HomePage, error) {
	return r.get(ctx, selectHomePage+` FOR UPDATE`)
}

// CreateIfAbsent inserts hp unless the record already exists, in which case
// it does nothing.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, hp *models.HomePage) error {
	query :=
		`INSERT INTO homepage (id, site_title, use_logo, logo_image, hero_title, hero_description,
			about_paragraph1, about_paragraph2, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING
		 `
	_, err := r.db.ExecContext(ctx, query,
		hp.SiteTitle, hp.UseLogo, hp.LogoImage, hp.HeroTitle, hp.HeroDescription,
		hp.AboutParagraph1, hp.AboutParagraph2, hp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, hp *models.HomePage) error {
	query :=
		`UPDATE homepage SET site_title = $1, use_logo = $2, logo_image = $3, hero_title = $4,
			hero_description = $5, about_paragraph1 = $6, about_paragraph2 = $7, updated_at = $8
		 WHERE id = 1
		 `
	res, err := r.db.ExecContext(ctx, query,
		hp.SiteTitle, hp.UseLogo, hp.LogoImage, hp.HeroTitle, hp.HeroDescription,
		hp.AboutParagraph1, hp.AboutParagraph2, hp.UpdatedAt)
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
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM homepage`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
