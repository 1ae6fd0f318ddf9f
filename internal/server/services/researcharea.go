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

type ResearchAreaInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Photo       string `json:"photo"`
}

type ResearchAreaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
}

func NewResearchAreaService(db *sql.DB, m repomanager.RepositoryManager, clk clock.Clock) *ResearchAreaService {
	return &ResearchAreaService{db: db, repomanager: m, clock: clk}
}

func (s *ResearchAreaService) List(ctx context.Context) ([]*models.ResearchArea, error) {
	items, err := s.repomanager.ResearchAreas(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list research areas: %w", err)
	}
	return items, nil
}

func (s *ResearchAreaService) Create(ctx context.Context, in ResearchAreaInput) (*models.ResearchArea, error) {
	trim(&in.Title, &in.Description, &in.Photo)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	a := &models.ResearchArea{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Photo:       optionalString(in.Photo),
		CreatedAt:   s.clock.Now().UTC(),
	}
	if _, err := s.repomanager.ResearchAreas(s.db).Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create research area: %w", err)
	}
	return a, nil
}

func (s *ResearchAreaService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repomanager.ResearchAreas(s.db).Delete(ctx, id)
}
