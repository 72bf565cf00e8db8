// Package session holds the logged-in user for the lifetime of the client
// and mirrors it to the local metadata repository, so a restart restores it.
//
// The store is the single owner of session state. Views read it through
// Current and Subscribe; flows write server-confirmed values through Set
// and Update.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/artstore/internal/logging"
)

// UserKey is the metadata key the serialized user is stored under.
const UserKey = "user"

// Listener is called after every change with a copy of the new user
// (nil when logged out).
type Listener func(u *api.User)

type Store struct {
	mu        sync.Mutex
	user      *api.User
	repo      metadata.Repository
	logger    logging.Logger
	listeners map[int]Listener
	nextID    int
}

func NewStore(repo metadata.Repository, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Store{
		repo:      repo,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Current returns a copy of the logged-in user, or nil.
func (s *Store) Current() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Set replaces the current user; nil logs out. Memory and listeners are
// updated first, so the returned error only reports a failed write to the
// local repository.
func (s *Store) Set(ctx context.Context, u *api.User) error {
	s.mu.Lock()
	s.user = u.Clone()
	snapshot := s.user.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return s.persist(ctx, snapshot)
}

// Update applies fn to the current user. Returns client.ErrNotLoggedIn
// when there is no session.
func (s *Store) Update(ctx context.Context, fn func(u *api.User)) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return client.ErrNotLoggedIn
	}
	fn(s.user)
	snapshot := s.user.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return s.persist(ctx, snapshot)
}

// Logout clears the session. Calling it while logged out is a no-op apart
// from removing any stale persisted value.
func (s *Store) Logout(ctx context.Context) error {
	return s.Set(ctx, nil)
}

// Restore loads the persisted user. A missing, unreadable or empty value
// leaves the store logged out; a bad value is removed. Only repository
// read failures are returned.
func (s *Store) Restore(ctx context.Context) (*api.User, error) {
	raw, err := s.repo.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	u, err := decodeUser(raw)
	if err != nil {
		s.logger.Warn(ctx, "discarding stored session", "error", err)
		if derr := s.repo.Delete(ctx, UserKey); derr != nil {
			s.logger.Warn(ctx, "failed to delete stored session", "error", derr)
		}
		return nil, nil
	}

	s.mu.Lock()
	s.user = u
	snapshot := u.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot, nil
}

var errEmptyUser = errors.New("stored user has no username")

func decodeUser(raw []byte) (*api.User, error) {
	var u api.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	if u.Username == "" {
		return nil, errEmptyUser
	}
	return &u, nil
}

func (s *Store) persist(ctx context.Context, u *api.User) error {
	if u == nil {
		if err := s.repo.Delete(ctx, UserKey); err != nil {
			return fmt.Errorf("clear persisted session: %w", err)
		}
		return nil
	}

	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, UserKey, b); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) notify(u *api.User) {
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	for _, l := range ls {
		l(u.Clone())
	}
}
