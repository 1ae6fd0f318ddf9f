package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/dbx"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
	"github.com/juju/clock"
)

// HomePageInput distinguishes absent optional fields from explicit ones:
// a present siteTitle, useLogo or logoImage always overwrites, even when
// empty or false. A null logoImage clears it; a null siteTitle or useLogo
// counts as absent.
type HomePageInput struct {
	SiteTitle       models.Optional[string] `json:"siteTitle"` // null is ignored: the column is NOT NULL
	UseLogo         models.Optional[bool]   `json:"useLogo"`   // null is ignored: the column is NOT NULL
	LogoImage       models.Optional[string] `json:"logoImage"` // null clears the logo
	HeroTitle       string                  `json:"heroTitle" validate:"required"`
	HeroDescription string                  `json:"heroDescription" validate:"required"`
	AboutParagraph1 string                  `json:"aboutParagraph1" validate:"required"`
	AboutParagraph2 string                  `json:"aboutParagraph2" validate:"required"`
}

type HomePageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
}

func NewHomePageService(db *sql.DB, m repomanager.RepositoryManager, clk clock.Clock) *HomePageService {
	return &HomePageService{db: db, repomanager: m, clock: clk}
}

// Get returns the home page, storing the defaults on first access.
func (s *HomePageService) Get(ctx context.Context) (*models.HomePage, error) {
	repo := s.repomanager.HomePage(s.db)

	hp, err := repo.Get(ctx)
	if err == nil {
		return hp, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("get home page: %w", err)
	}

	if err := repo.CreateIfAbsent(ctx, models.DefaultHomePage(s.clock.Now().UTC())); err != nil {
		return nil, fmt.Errorf("create home page: %w", err)
	}

	// another request may have won the insert; read whichever row exists
	hp, err = repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get home page: %w", err)
	}
	return hp, nil
}

func (s *HomePageService) Update(ctx context.Context, in HomePageInput) (*models.HomePage, error) {
	trim(&in.HeroTitle, &in.HeroDescription, &in.AboutParagraph1, &in.AboutParagraph2)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var result *models.HomePage
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.HomePage(tx)
		now := s.clock.Now().UTC()

		if err := repo.CreateIfAbsent(ctx, models.DefaultHomePage(now)); err != nil {
			return err
		}

		hp, err := repo.GetForUpdate(ctx)
		if err != nil {
			return err
		}

		in.applyTo(hp)
		hp.UpdatedAt = now

		if err := repo.Update(ctx, hp); err != nil {
			return err
		}
		result = hp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update home page: %w", err)
	}
	return result, nil
}

func (in HomePageInput) applyTo(hp *models.HomePage) {
	if in.SiteTitle.Present() {
		hp.SiteTitle = in.SiteTitle.Value
	}
	if in.UseLogo.Present() {
		hp.UseLogo = in.UseLogo.Value
	}
	if in.LogoImage.Set {
		if in.LogoImage.Null {
			hp.LogoImage = nil
		} else {
			v := in.LogoImage.Value
			hp.LogoImage = &v
		}
	}
	hp.HeroTitle = in.HeroTitle
	hp.HeroDescription = in.HeroDescription
	hp.AboutParagraph1 = in.AboutParagraph1
	hp.AboutParagraph2 = in.AboutParagraph2
}
