package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/models"
	"github.com/dmitrijs2005/artstore/internal/client/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for service unit tests. Every call
// is counted so tests can assert that nothing reached the network.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	LoginRet *api.User
	LoginErr error

	RegisterErr  error
	LastRegister api.RegisterRequest

	GalleryRet []api.Artwork
	GalleryErr error

	PurchasedRet []api.Artwork
	PurchasedErr error

	PurchaseRet  *api.PurchaseResponse
	PurchaseErr  error
	LastPurchase api.PurchaseRequest

	ProfileRet *api.User
	ProfileErr error

	UpdateErr  error
	LastUpdate api.UpdateProfileRequest

	TopupRet  *api.TopupResponse
	TopupErr  error
	LastTopup api.TopupRequest

	PresignRet  *api.PresignResponse
	PresignErr  error
	LastPresign api.PresignRequest

	UploadErr  error
	LastUpload struct {
		URL         string
		ContentType string
		Data        []byte
	}
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(_ context.Context, req api.LoginRequest) (*api.User, error) {
	f.record("login")
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet.Clone(), nil
}

func (f *fakeClient) Register(_ context.Context, req api.RegisterRequest) (*api.MessageResponse, error) {
	f.record("register")
	f.LastRegister = req
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &api.MessageResponse{Msg: "user created"}, nil
}

func (f *fakeClient) Gallery(context.Context) ([]api.Artwork, error) {
	f.record("gallery")
	return f.GalleryRet, f.GalleryErr
}

func (f *fakeClient) Purchased(context.Context, string) ([]api.Artwork, error) {
	f.record("purchased")
	return f.PurchasedRet, f.PurchasedErr
}

func (f *fakeClient) Purchase(_ context.Context, req api.PurchaseRequest) (*api.PurchaseResponse, error) {
	f.record("purchase")
	f.LastPurchase = req
	if f.PurchaseErr != nil {
		return nil, f.PurchaseErr
	}
	return f.PurchaseRet, nil
}

func (f *fakeClient) Profile(context.Context, string) (*api.User, error) {
	f.record("profile")
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	return f.ProfileRet.Clone(), nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, req api.UpdateProfileRequest) (*api.MessageResponse, error) {
	f.record("update")
	f.LastUpdate = req
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return &api.MessageResponse{Msg: "profile updated"}, nil
}

func (f *fakeClient) Topup(_ context.Context, req api.TopupRequest) (*api.TopupResponse, error) {
	f.record("topup")
	f.LastTopup = req
	if f.TopupErr != nil {
		return nil, f.TopupErr
	}
	return f.TopupRet, nil
}

func (f *fakeClient) Presign(_ context.Context, req api.PresignRequest) (*api.PresignResponse, error) {
	f.record("presign")
	f.LastPresign = req
	if f.PresignErr != nil {
		return nil, f.PresignErr
	}
	return f.PresignRet, nil
}

func (f *fakeClient) Upload(_ context.Context, uploadURL, contentType string, data []byte) error {
	f.record("upload")
	f.LastUpload.URL = uploadURL
	f.LastUpload.ContentType = contentType
	f.LastUpload.Data = data
	return f.UploadErr
}

// memRepo is an in-memory metadata.Repository.
type memRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// fakeUploads implements UploadService without touching disk or network.
type fakeUploads struct {
	PrepareErr error
	UploadKey  string
	UploadErr  error
	prepared   []string
}

func (f *fakeUploads) Prepare(path, folder string) (*models.PendingUpload, error) {
	f.prepared = append(f.prepared, path)
	if f.PrepareErr != nil {
		return nil, f.PrepareErr
	}
	return &models.PendingUpload{Path: path, Folder: folder, Data: []byte{1}, ContentType: "image/png"}, nil
}

func (f *fakeUploads) Upload(context.Context, *models.PendingUpload) (string, error) {
	if f.UploadErr != nil {
		return "", f.UploadErr
	}
	return f.UploadKey, nil
}

var errBoom = errors.New("boom")

func newStore() *session.Store {
	return session.NewStore(&memRepo{data: map[string][]byte{}}, nil)
}

func loggedInStore(t *testing.T, balance int64) *session.Store {
	t.Helper()
	s := newStore()
	require.NoError(t, s.Set(context.Background(), &api.User{
		Username:    "ana",
		DisplayName: "Ana",
		Balance:     decimal.NewFromInt(balance),
		Photo:       "profiles/old.png",
	}))
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
