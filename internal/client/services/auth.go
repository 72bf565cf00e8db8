// Package services holds the storefront client's use cases: sign-in,
// gallery and purchases, profile and top-ups, and photo uploads. Services
// validate locally, call the API, then apply the server-confirmed result to
// the session store.
package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/session"
	"github.com/dmitrijs2005/artstore/internal/logging"
)

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Username    string `validate:"required"`
	DisplayName string `validate:"required"`
	Password    string `validate:"required,min=6"`
	Confirm     string `validate:"required,eqfield=Password"`
	PhotoPath   string
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterResult carries the server message and, when a photo was given
// but could not be uploaded, the reason.
type RegisterResult struct {
	Message      string
	PhotoKey     string
	PhotoWarning error
}

// AuthService defines sign-in operations for the CLI.
//
// Login replaces the session with the server's user. Register creates an
// account without logging in. Logout clears the session and is idempotent.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*api.User, error)
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Logout(ctx context.Context) error
	Close() error
}

type authService struct {
	client  client.Client
	session *session.Store
	uploads UploadService
	logger  logging.Logger
}

func NewAuthService(c client.Client, s *session.Store, uploads UploadService, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &authService{client: c, session: s, uploads: uploads, logger: logger}
}

func (a *authService) Login(ctx context.Context, username, password string) (*api.User, error) {
	username = strings.TrimSpace(username)
	if err := validateStruct(loginForm{Username: username, Password: password}); err != nil {
		return nil, err
	}

	u, err := a.client.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		a.logger.Error(ctx, "login failed", "username", username, "error", err)
		return nil, failed(ErrLoginFailed, err)
	}
	if u.Username == "" {
		u.Username = username
	}

	if err := a.session.Set(ctx, u); err != nil {
		a.logger.Warn(ctx, "session not persisted", "error", err)
	}
	a.logger.Info(ctx, "logged in", "username", u.Username)
	return u.Clone(), nil
}

func (a *authService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	res := &RegisterResult{}
	if path := strings.TrimSpace(req.PhotoPath); path != "" {
		key, err := a.uploadPhoto(ctx, path)
		if err != nil {
			a.logger.Warn(ctx, "profile photo not uploaded, registering without it", "error", err)
			res.PhotoWarning = err
		} else {
			res.PhotoKey = key
		}
	}

	resp, err := a.client.Register(ctx, api.RegisterRequest{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		PhotoKey:    res.PhotoKey,
	})
	if err != nil {
		a.logger.Error(ctx, "registration failed", "username", req.Username, "error", err)
		return nil, failed(ErrRegisterFailed, err)
	}
	res.Message = resp.Msg
	return res, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close() error {
	return a.client.Close()
}

func (a *authService) uploadPhoto(ctx context.Context, path string) (string, error) {
	p, err := a.uploads.Prepare(path, ProfileFolder)
	if err != nil {
		return "", err
	}
	return a.uploads.Upload(ctx, p)
}
