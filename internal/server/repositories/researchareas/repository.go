package researchareas

import (
	"context"

	"github.com/dmitrijs2005/labsite/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.ResearchArea, error)
	Create(ctx context.Context, a *models.ResearchArea) (*models.ResearchArea, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
