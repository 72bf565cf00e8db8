package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/artstore/internal/common"
	"github.com/dmitrijs2005/artstore/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*models.User
	byName map[string]int64
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   map[int64]*models.User{},
		byName: map[string]int64{},
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}

	r.nextID++
	u := *user
	u.ID = r.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.byID[u.ID] = &u
	r.byName[u.UserName] = u.ID

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if user.UserName != cur.UserName {
		if _, taken := r.byName[user.UserName]; taken {
			return common.ErrorAlreadyExists
		}
		delete(r.byName, cur.UserName)
		r.byName[user.UserName] = user.ID
	}

	u := *user
	r.byID[u.ID] = &u
	return nil
}
