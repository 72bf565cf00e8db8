package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/logging"
	"github.com/dmitrijs2005/artstore/internal/server/models"
	"github.com/dmitrijs2005/artstore/internal/server/repositories/artworks"
	"github.com/dmitrijs2005/artstore/internal/server/repositories/users"
	"github.com/dmitrijs2005/artstore/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePresigner struct {
	folder, filename, contentType string
	err                           error
}

func (f *fakePresigner) PresignPut(_ context.Context, folder, filename, contentType string) (string, string, error) {
	f.folder, f.filename, f.contentType = folder, filename, contentType
	if f.err != nil {
		return "", "", f.err
	}
	return folder + "/" + filename, "http://s3.local/bucket/" + folder + "/" + filename + "?sig=1", nil
}

type testServer struct {
	*Server
	store     *services.StoreService
	presigner *fakePresigner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	arts := artworks.NewMemoryRepository()
	require.NoError(t, artworks.Seed(context.Background(), arts, []models.Artwork{
		{Title: "Cheap", Author: "A", Year: 2000, Price: decimal.NewFromInt(100), ImageKey: "obras/cheap.jpg"},
		{Title: "Pricey", Author: "B", Year: 2001, Price: decimal.NewFromInt(5000)},
	}))
	store := services.NewStoreService(users.NewMemoryRepository(), arts, services.WithHashCost(bcrypt.MinCost))
	p := &fakePresigner{}
	return &testServer{Server: NewServer(":0", logging.Nop{}, store, p), store: store, presigner: p}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) register(t *testing.T, username string) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/auth/register", api.RegisterRequest{Username: username, DisplayName: "N", Password: "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var e api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e.Error
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register", api.RegisterRequest{
		Username: "ana", DisplayName: "Ana", Password: "secret1", PhotoKey: "profiles/a.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"msg":"user registered"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/auth/register", api.RegisterRequest{Username: "ana", DisplayName: "Ana", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "username already taken", decodeError(t, rec))

	rec = ts.do(t, http.MethodPost, "/auth/register", api.RegisterRequest{Username: "bo", DisplayName: "Bo", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password must be at least 6 characters", decodeError(t, rec))

	rec = ts.do(t, http.MethodPost, "/auth/login", api.LoginRequest{Username: "ana", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var u api.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, "Ana", u.DisplayName)
	assert.Equal(t, "profiles/a.png", u.Photo)
	assert.True(t, u.Balance.IsZero())
	require.NotNil(t, u.ID)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = ts.do(t, http.MethodPost, "/auth/login", api.LoginRequest{Username: "ana", Password: "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeError(t, rec))
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeError(t, rec))
}

func TestGalleryPurchaseFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ana")

	rec := ts.do(t, http.MethodGet, "/gallery", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []api.Artwork
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "obras/cheap.jpg", list[0].Image)
	assert.True(t, list[0].Available)

	rec = ts.do(t, http.MethodPost, "/purchase", api.PurchaseRequest{Username: "ana", ArtworkID: 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient balance", decodeError(t, rec))

	rec = ts.do(t, http.MethodPost, "/profile/topup", api.TopupRequest{Username: "ana", Amount: json.Number("150.5")})
	require.Equal(t, http.StatusOK, rec.Code)
	var top api.TopupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	assert.Equal(t, "150.5", top.Balance.String())

	rec = ts.do(t, http.MethodPost, "/purchase", api.PurchaseRequest{Username: "ana", ArtworkID: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var pr api.PurchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pr))
	assert.Equal(t, "50.5", pr.Balance.String())

	rec = ts.do(t, http.MethodPost, "/purchase", api.PurchaseRequest{Username: "ana", ArtworkID: 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "artwork not available", decodeError(t, rec))

	rec = ts.do(t, http.MethodPost, "/purchase", api.PurchaseRequest{Username: "ana", ArtworkID: 42})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/profile/purchased?username=ana", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Cheap", list[0].Title)
	assert.False(t, list[0].Available)
}

func TestTopup_Invalid(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ana")

	for _, amount := range []string{"0", "-1", "1000001", "1e999999999", "1e-999999999", "-1e999999999"} {
		rec := ts.do(t, http.MethodPost, "/profile/topup", api.TopupRequest{Username: "ana", Amount: json.Number(amount)})
		assert.Equal(t, http.StatusBadRequest, rec.Code, amount)
	}

	// bounds are checked before the user lookup
	rec := ts.do(t, http.MethodPost, "/profile/topup", api.TopupRequest{Username: "nobody", Amount: json.Number("1e999999999")})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/profile/topup", api.TopupRequest{Username: "ana", Amount: json.Number("1e3")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.TopupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1000", resp.Balance.String())

	rec = ts.do(t, http.MethodPost, "/profile/topup", map[string]any{"username": "ana"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ana")

	rec := ts.do(t, http.MethodGet, "/profile/me", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/profile/me?username=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPut, "/profile", api.UpdateProfileRequest{Username: "ana", PasswordConfirm: "wrong", DisplayName: "X"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPut, "/profile", api.UpdateProfileRequest{
		Username: "ana", PasswordConfirm: "secret1", NewUsername: "anita", DisplayName: "Anita",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"profile updated"}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/profile/me?username=anita", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var u api.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "Anita", u.DisplayName)
}

func TestPresign(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/s3/presign", api.PresignRequest{Folder: "profiles", Filename: "p.png", ContentType: "image/png"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.PresignResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "profiles/p.png", resp.Key)
	assert.Contains(t, resp.UploadURL, "profiles/p.png")
	assert.Equal(t, "image/png", ts.presigner.contentType)

	ts.presigner.err = &services.InputError{Reason: "filename is invalid"}
	rec = ts.do(t, http.MethodPost, "/s3/presign", api.PresignRequest{Folder: "profiles", Filename: "../x", ContentType: "image/png"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "filename is invalid", decodeError(t, rec))

	ts.presigner.err = errors.New("s3 down")
	rec = ts.do(t, http.MethodPost, "/s3/presign", api.PresignRequest{Folder: "profiles", Filename: "p.png", ContentType: "image/png"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec))
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	rec = ts.do(t, http.MethodGet, "/gallery", nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestID_ReachesLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	srv := NewServer(":0", logger, newTestServer(t).store, &fakePresigner{})

	req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
	req.Header.Set(requestIDHeader, "trace-9")
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "msg=request")
	assert.Contains(t, buf.String(), "request_id=trace-9")
}
