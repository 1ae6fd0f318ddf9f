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

// LatestNewsLimit caps the /news/latest feed.
const LatestNewsLimit = 5

// NewsInput.Date is "YYYY-MM-DD" or an RFC 3339 timestamp.
type NewsInput struct {
	Date     string     `json:"date" validate:"required"`
	Headline string     `json:"headline" validate:"required"`
	Content  string     `json:"content" validate:"required"`
	Tag      models.Tag `json:"tag" validate:"required,newstag"`
}

type NewsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
}

func NewNewsService(db *sql.DB, m repomanager.RepositoryManager, clk clock.Clock) *NewsService {
	return &NewsService{db: db, repomanager: m, clock: clk}
}

func (s *NewsService) List(ctx context.Context) ([]*models.NewsItem, error) {
	items, err := s.repomanager.News(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

func (s *NewsService) Latest(ctx context.Context) ([]*models.NewsItem, error) {
	items, err := s.repomanager.News(s.db).Latest(ctx, LatestNewsLimit)
	if err != nil {
		return nil, fmt.Errorf("latest news: %w", err)
	}
	return items, nil
}

func (s *NewsService) Create(ctx context.Context, in NewsInput) (*models.NewsItem, error) {
	trim(&in.Date, &in.Headline, &in.Content)
	in.Tag = models.Tag(trimmed(string(in.Tag)))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	n := &models.NewsItem{
		ID:        uuid.NewString(),
		Date:      date,
		Headline:  in.Headline,
		Content:   in.Content,
		Tag:       in.Tag,
		CreatedAt: s.clock.Now().UTC(),
	}
	if _, err := s.repomanager.News(s.db).Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repomanager.News(s.db).Delete(ctx, id)
}
