package artworks

import (
	"context"

	"github.com/dmitrijs2005/artstore/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, a *models.Artwork) (*models.Artwork, error)
	Get(ctx context.Context, id int64) (*models.Artwork, error)
	// List returns the whole catalog ordered by ID.
	List(ctx context.Context) ([]models.Artwork, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Artwork, error)
	Update(ctx context.Context, a *models.Artwork) error
}
