package client

import (
	"context"

	"github.com/dmitrijs2005/artstore/internal/api"
)

// Client is the storefront backend as seen by the client flows. Every method
// is a single fail-fast call; none of them retry.
type Client interface {
	Close() error
	Login(ctx context.Context, req api.LoginRequest) (*api.User, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.MessageResponse, error)
	Gallery(ctx context.Context) ([]api.Artwork, error)
	Purchased(ctx context.Context, username string) ([]api.Artwork, error)
	Purchase(ctx context.Context, req api.PurchaseRequest) (*api.PurchaseResponse, error)
	Profile(ctx context.Context, username string) (*api.User, error)
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.MessageResponse, error)
	Topup(ctx context.Context, req api.TopupRequest) (*api.TopupResponse, error)
	Presign(ctx context.Context, req api.PresignRequest) (*api.PresignResponse, error)
	// Upload PUTs raw bytes to a pre-signed object-store URL.
	Upload(ctx context.Context, uploadURL string, contentType string, data []byte) error
}
