// Package services contains the reference server's business logic: the
// storefront (accounts, catalog, purchases, balances) and presigned
// uploads to the object store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/artstore/internal/common"
	"github.com/dmitrijs2005/artstore/internal/server/models"
	"github.com/dmitrijs2005/artstore/internal/server/repositories/artworks"
	"github.com/dmitrijs2005/artstore/internal/server/repositories/users"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

// MaxTopup caps a single balance top-up.
var MaxTopup = decimal.NewFromInt(1_000_000)

// StoreService owns every balance and ownership change. Mutations are
// serialized so a purchase debits the buyer and claims the artwork as one
// step.
type StoreService struct {
	mu       sync.Mutex
	users    users.Repository
	artworks artworks.Repository
	hashCost int
	now      func() time.Time
}

type StoreOption func(*StoreService)

// WithHashCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) StoreOption {
	return func(s *StoreService) {
		s.hashCost = cost
	}
}

func NewStoreService(u users.Repository, a artworks.Repository, opts ...StoreOption) *StoreService {
	s := &StoreService{
		users:    u,
		artworks: a,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Username    string
	DisplayName string
	Password    string
	PhotoKey    string
}

// Register creates an account with a zero balance.
func (s *StoreService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	switch {
	case in.Username == "":
		return nil, invalid("username is required")
	case in.DisplayName == "":
		return nil, invalid("full name is required")
	case len(in.Password) < MinPasswordLength:
		return nil, invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		UserName:     in.Username,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		Balance:      decimal.Zero,
		PhotoKey:     in.PhotoKey,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *StoreService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.checkPassword(user, password); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *StoreService) Gallery(ctx context.Context) ([]models.Artwork, error) {
	return s.artworks.List(ctx)
}

// Purchase moves the artwork to the buyer and debits its price.
func (s *StoreService) Purchase(ctx context.Context, username string, artworkID int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, err
	}
	art, err := s.artworks.Get(ctx, artworkID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}
	if !art.Available() {
		return nil, ErrArtworkNotAvailable
	}
	if user.Balance.LessThan(art.Price) {
		return nil, ErrInsufficientBalance
	}

	art.OwnerID = user.ID
	art.SoldAt = s.now()
	if err := s.artworks.Update(ctx, art); err != nil {
		return nil, err
	}

	user.Balance = user.Balance.Sub(art.Price)
	if err := s.users.Update(ctx, user); err != nil {
		// give the artwork back
		art.OwnerID = 0
		art.SoldAt = time.Time{}
		if rerr := s.artworks.Update(ctx, art); rerr != nil {
			return nil, errors.Join(err, fmt.Errorf("restore artwork %d: %w", art.ID, rerr))
		}
		return nil, err
	}
	return user, nil
}

func (s *StoreService) Purchased(ctx context.Context, username string) ([]models.Artwork, error) {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.artworks.ListByOwner(ctx, user.ID)
}

func (s *StoreService) Profile(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, username)
}

type ProfileUpdate struct {
	Username        string
	PasswordConfirm string
	NewUsername     string
	DisplayName     string
	PhotoKey        string
}

// UpdateProfile applies the non-empty fields of in after checking the
// current password.
func (s *StoreService) UpdateProfile(ctx context.Context, in ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.getUser(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if err := s.checkPassword(user, in.PasswordConfirm); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.NewUsername); v != "" {
		user.UserName = v
	}
	if v := strings.TrimSpace(in.DisplayName); v != "" {
		user.DisplayName = v
	}
	if in.PhotoKey != "" {
		user.PhotoKey = in.PhotoKey
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Topup credits 0 < amount <= MaxTopup.
func (s *StoreService) Topup(ctx context.Context, username string, amount decimal.Decimal) (*models.User, error) {
	// bounds first: comparing an unbounded exponent rescales it
	if !common.AmountWithinBounds(amount) || !amount.IsPositive() || amount.GreaterThan(MaxTopup) {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Balance = user.Balance.Add(amount)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *StoreService) getUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *StoreService) checkPassword(user *models.User, password string) error {
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
