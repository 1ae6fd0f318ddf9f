package publications

import (
	"context"

	"github.com/dmitrijs2005/labsite/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Publication, error)
	Create(ctx context.Context, p *models.Publication) (*models.Publication, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
