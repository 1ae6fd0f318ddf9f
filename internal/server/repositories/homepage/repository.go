package homepage

import (
	"context"

	"github.com/dmitrijs2005/labsite/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.HomePage, error)
	GetForUpdate(ctx context.Context) (*models.HomePage, error)
	CreateIfAbsent(ctx context.Context, hp *models.HomePage) error
	Update(ctx context.Context, hp *models.HomePage) error
	Count(ctx context.Context) (int64, error)
}
