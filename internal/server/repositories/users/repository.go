package users

import (
	"context"

	"github.com/dmitrijs2005/artstore/internal/server/models"
)

// Repository stores accounts. Lookups by name are exact; implementations
// report common.ErrorNotFound and common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// Update replaces the stored user with the same ID; renaming onto a
	// taken name fails.
	Update(ctx context.Context, user *models.User) error
}
