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

// PersonInput.Photo is optional: a data URL or an uploaded object URL.
type PersonInput struct {
	Name     string          `json:"name" validate:"required"`
	Role     string          `json:"role" validate:"required"`
	Email    string          `json:"email" validate:"required"`
	Category models.Category `json:"category" validate:"required,category"`
	Photo    string          `json:"photo"`
}

type PersonService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
}

func NewPersonService(db *sql.DB, m repomanager.RepositoryManager, clk clock.Clock) *PersonService {
	return &PersonService{db: db, repomanager: m, clock: clk}
}

func (s *PersonService) List(ctx context.Context) ([]*models.Person, error) {
	items, err := s.repomanager.People(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return items, nil
}

func (s *PersonService) Create(ctx context.Context, in PersonInput) (*models.Person, error) {
	trim(&in.Name, &in.Role, &in.Email, &in.Photo)
	in.Category = models.Category(trimmed(string(in.Category)))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p := &models.Person{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Role:      in.Role,
		Email:     in.Email,
		Category:  in.Category,
		Photo:     optionalString(in.Photo),
		CreatedAt: s.clock.Now().UTC(),
	}
	if _, err := s.repomanager.People(s.db).Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return p, nil
}

func (s *PersonService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repomanager.People(s.db).Delete(ctx, id)
}
