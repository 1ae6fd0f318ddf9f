package people

import (
	"context"

	"github.com/dmitrijs2005/labsite/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Person, error)
	Create(ctx context.Context, p *models.Person) (*models.Person, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
