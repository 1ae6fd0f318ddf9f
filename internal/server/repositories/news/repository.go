package news

import (
	"context"

	"github.com/dmitrijs2005/labsite/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.NewsItem, error)
	Latest(ctx context.Context, limit int) ([]*models.NewsItem, error)
	Create(ctx context.Context, n *models.NewsItem) (*models.NewsItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
