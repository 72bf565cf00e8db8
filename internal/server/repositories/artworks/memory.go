package artworks

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/artstore/internal/common"
	"github.com/dmitrijs2005/artstore/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]models.Artwork
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[int64]models.Artwork{}}
}

// Add stores a. A zero ID is assigned the next free one; an explicit ID
// must be unused.
func (r *MemoryRepository) Add(ctx context.Context, a *models.Artwork) (*models.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := *a
	if item.ID == 0 {
		item.ID = r.nextID + 1
	}
	if _, ok := r.items[item.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if item.ID > r.nextID {
		r.nextID = item.ID
	}
	r.items[item.ID] = item
	return &item, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Artwork, error) {
	return r.filter(func(models.Artwork) bool { return true }), nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Artwork, error) {
	return r.filter(func(a models.Artwork) bool { return a.OwnerID == ownerID }), nil
}

func (r *MemoryRepository) Update(ctx context.Context, a *models.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[a.ID]; !ok {
		return common.ErrorNotFound
	}
	r.items[a.ID] = *a
	return nil
}

func (r *MemoryRepository) filter(keep func(models.Artwork) bool) []models.Artwork {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Artwork, 0, len(r.items))
	for _, a := range r.items {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
