package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/juju/clock"
)

type PublicationInput struct {
	Authors string            `json:"authors" validate:"required"`
	Title   string            `json:"title" validate:"required"`
	Journal string            `json:"journal" validate:"required"`
	Year    models.FlexString `json:"year" validate:"required"`
}

type PublicationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
}

func NewPublicationService(db *sql.DB, m repomanager.RepositoryManager, clk clock.Clock) *PublicationService {
	return &PublicationService{db: db, repomanager: m, clock: clk}
}

func (s *PublicationService) List(ctx context.Context) ([]*models.Publication, error) {
	items, err := s.repomanager.Publications(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	return items, nil
}

func (s *PublicationService) Create(ctx context.Context, in PublicationInput) (*models.Publication, error) {
	trim(&in.Authors, &in.Title, &in.Journal)
	in.Year = models.FlexString(trimmed(string(in.Year)))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p := &models.Publication{
		ID:        uuid.NewString(),
		Authors:   in.Authors,
		Title:     in.Title,
		Journal:   in.Journal,
		Year:      string(in.Year),
		Timestamp: s.clock.Now().UTC(),
	}
	if _, err := s.repomanager.Publications(s.db).Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create publication: %w", err)
	}
	return p, nil
}

// Delete returns common.ErrorNotFound for unknown or malformed ids.
func (s *PublicationService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repomanager.Publications(s.db).Delete(ctx, id)
}
