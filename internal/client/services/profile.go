package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/session"
	"github.com/dmitrijs2005/artstore/internal/logging"
	"github.com/shopspring/decimal"
)

// EditRequest describes a profile change. Nil or blank fields are left
// as they are.
type EditRequest struct {
	NewUsername     *string
	NewDisplayName  *string
	PhotoPath       string
	PasswordConfirm string `validate:"required"`
}

// EditResult is returned for a successful edit. PhotoWarning is set when
// the photo could not be uploaded and the edit went ahead without it.
type EditResult struct {
	Message      string
	PhotoKey     string
	PhotoWarning error
	User         *api.User
}

// ProfileService covers everything on the profile page: refresh, top-up
// and edit.
type ProfileService interface {
	Get(ctx context.Context) (*api.User, error)
	Topup(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	Edit(ctx context.Context, req EditRequest) (*EditResult, error)
}

type profileService struct {
	client   client.Client
	session  *session.Store
	uploads  UploadService
	logger   logging.Logger
	maxTopup decimal.Decimal
}

func NewProfileService(c client.Client, s *session.Store, uploads UploadService, logger logging.Logger) ProfileService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &profileService{client: c, session: s, uploads: uploads, logger: logger, maxTopup: MaxTopup}
}

// Get refreshes the session from the server's copy of the user.
func (s *profileService) Get(ctx context.Context) (*api.User, error) {
	current := s.session.Current()
	if current == nil {
		return nil, client.ErrNotLoggedIn
	}

	u, err := s.client.Profile(ctx, current.Username)
	if err != nil {
		s.logger.Error(ctx, "profile load failed", "error", err)
		return nil, failed(ErrProfileFailed, err)
	}
	if u.Username == "" {
		u.Username = current.Username
	}

	s.setSession(ctx, u)
	return u.Clone(), nil
}

// Topup adds amount to the balance and returns the balance the server
// reports afterwards.
func (s *profileService) Topup(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	current := s.session.Current()
	if current == nil {
		return decimal.Zero, client.ErrNotLoggedIn
	}
	if err := ValidateTopup(amount, s.maxTopup); err != nil {
		return decimal.Zero, err
	}

	resp, err := s.client.Topup(ctx, api.TopupRequest{
		Username: current.Username,
		Amount:   json.Number(amount.String()),
	})
	if err != nil {
		s.logger.Error(ctx, "top-up failed", "amount", amount.String(), "error", err)
		return decimal.Zero, failed(ErrTopupFailed, err)
	}

	s.updateSession(ctx, func(u *api.User) { u.Balance = resp.Balance })
	s.logger.Info(ctx, "top-up confirmed", "amount", amount.String(), "balance", resp.Balance.String())
	return resp.Balance, nil
}

func (s *profileService) Edit(ctx context.Context, req EditRequest) (*EditResult, error) {
	current := s.session.Current()
	if current == nil {
		return nil, client.ErrNotLoggedIn
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	newUsername := changed(req.NewUsername, current.Username)
	newDisplayName := changed(req.NewDisplayName, current.DisplayName)
	photoPath := strings.TrimSpace(req.PhotoPath)
	if newUsername == "" && newDisplayName == "" && photoPath == "" {
		return nil, ErrNoChanges
	}

	res := &EditResult{}
	if photoPath != "" {
		key, err := s.uploadPhoto(ctx, photoPath)
		if err != nil {
			s.logger.Warn(ctx, "profile photo not uploaded, continuing without it", "error", err)
			res.PhotoWarning = err
		} else {
			res.PhotoKey = key
		}
	}

	resp, err := s.client.UpdateProfile(ctx, api.UpdateProfileRequest{
		Username:        current.Username,
		PasswordConfirm: req.PasswordConfirm,
		NewUsername:     newUsername,
		DisplayName:     newDisplayName,
		PhotoKey:        res.PhotoKey,
	})
	if err != nil {
		s.logger.Error(ctx, "profile update failed", "error", err)
		return nil, failed(ErrEditFailed, err)
	}
	res.Message = resp.Msg

	s.updateSession(ctx, func(u *api.User) {
		if newUsername != "" {
			u.Username = newUsername
		}
		if newDisplayName != "" {
			u.DisplayName = newDisplayName
		}
		if res.PhotoKey != "" {
			u.Photo = res.PhotoKey
		}
	})
	res.User = s.session.Current()
	return res, nil
}

func (s *profileService) uploadPhoto(ctx context.Context, path string) (string, error) {
	p, err := s.uploads.Prepare(path, ProfileFolder)
	if err != nil {
		return "", err
	}
	return s.uploads.Upload(ctx, p)
}

func (s *profileService) setSession(ctx context.Context, u *api.User) {
	if err := s.session.Set(ctx, u); err != nil {
		s.logger.Warn(ctx, "session not persisted", "error", err)
	}
}

func (s *profileService) updateSession(ctx context.Context, fn func(u *api.User)) {
	err := s.session.Update(ctx, fn)
	if err != nil && !errors.Is(err, client.ErrNotLoggedIn) {
		s.logger.Warn(ctx, "session not persisted", "error", err)
	}
}

// changed returns the trimmed new value, or "" when it is absent, blank or
// equal to the current one.
func changed(v *string, current string) string {
	if v == nil {
		return ""
	}
	s := strings.TrimSpace(*v)
	if s == current {
		return ""
	}
	return s
}
