package admins

import (
	"context"

	"github.com/dmitrijs2005/labsite/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Count(ctx context.Context) (int64, error)
}
