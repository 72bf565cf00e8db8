package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/models"
	"github.com/dmitrijs2005/artstore/internal/client/session"
	"github.com/dmitrijs2005/artstore/internal/logging"
)

// Gallery is the locally held copy of the catalog. After a confirmed
// purchase only the bought item is flipped to unavailable; the list is not
// re-fetched.
type Gallery struct {
	mu       sync.RWMutex
	artworks []api.Artwork
}

func NewGallery(artworks []api.Artwork) *Gallery {
	return &Gallery{artworks: append([]api.Artwork(nil), artworks...)}
}

// Artworks returns a copy of every item, in server order.
func (g *Gallery) Artworks() []api.Artwork {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]api.Artwork(nil), g.artworks...)
}

// Available returns only the items that can still be bought.
func (g *Gallery) Available() []api.Artwork {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]api.Artwork, 0, len(g.artworks))
	for _, a := range g.artworks {
		if a.Available {
			out = append(out, a)
		}
	}
	return out
}

func (g *Gallery) Find(id int64) (api.Artwork, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, a := range g.artworks {
		if a.ID == id {
			return a, true
		}
	}
	return api.Artwork{}, false
}

// MarkSold flips the availability of id. Reports whether id was found.
func (g *Gallery) MarkSold(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.artworks {
		if g.artworks[i].ID == id {
			g.artworks[i].Available = false
			return true
		}
	}
	return false
}

func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.artworks)
}

// GalleryService loads the catalog and buys from it.
type GalleryService interface {
	Load(ctx context.Context) (*Gallery, error)
	Purchase(ctx context.Context, g *Gallery, artworkID int64) (*models.PurchaseResult, error)
	Purchased(ctx context.Context) ([]api.Artwork, models.PurchasedSummary, error)
}

type galleryService struct {
	client  client.Client
	session *session.Store
	logger  logging.Logger
}

func NewGalleryService(c client.Client, s *session.Store, logger logging.Logger) GalleryService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &galleryService{client: c, session: s, logger: logger}
}

func (s *galleryService) Load(ctx context.Context) (*Gallery, error) {
	artworks, err := s.client.Gallery(ctx)
	if err != nil {
		s.logger.Error(ctx, "gallery load failed", "error", err)
		return nil, failed(ErrLoadFailed, err)
	}
	return NewGallery(artworks), nil
}

// Purchase buys artworkID for the logged-in user. On success the session
// balance becomes the server's value and the item is marked sold in g.
func (s *galleryService) Purchase(ctx context.Context, g *Gallery, artworkID int64) (*models.PurchaseResult, error) {
	user := s.session.Current()
	if user == nil {
		return nil, client.ErrNotLoggedIn
	}

	if g == nil {
		return nil, ErrArtworkNotFound
	}
	art, ok := g.Find(artworkID)
	if !ok {
		return nil, ErrArtworkNotFound
	}
	if !art.Available {
		return nil, ErrArtworkUnavailable
	}

	resp, err := s.client.Purchase(ctx, api.PurchaseRequest{Username: user.Username, ArtworkID: artworkID})
	if err != nil {
		s.logger.Error(ctx, "purchase failed", "artwork", artworkID, "error", err)
		return nil, failed(ErrPurchaseFailed, err)
	}

	err = s.session.Update(ctx, func(u *api.User) { u.Balance = resp.Balance })
	if err != nil && !errors.Is(err, client.ErrNotLoggedIn) {
		s.logger.Warn(ctx, "session not persisted", "error", err)
	}
	g.MarkSold(artworkID)

	s.logger.Info(ctx, "purchase confirmed", "artwork", artworkID, "balance", resp.Balance.String())
	return &models.PurchaseResult{ArtworkID: artworkID, Message: resp.Msg, NewBalance: resp.Balance}, nil
}

// Purchased lists the logged-in user's collection with its totals.
func (s *galleryService) Purchased(ctx context.Context) ([]api.Artwork, models.PurchasedSummary, error) {
	user := s.session.Current()
	if user == nil {
		return nil, models.PurchasedSummary{}, client.ErrNotLoggedIn
	}

	list, err := s.client.Purchased(ctx, user.Username)
	if err != nil {
		s.logger.Error(ctx, "purchased list failed", "error", err)
		return nil, models.PurchasedSummary{}, failed(ErrLoadFailed, err)
	}
	return list, models.Summarize(list), nil
}
