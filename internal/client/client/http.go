package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/logging"
	"github.com/dmitrijs2005/artstore/internal/netx"
	"github.com/google/uuid"
)

// RequestIDHeaderName is set on every outbound API call.
const RequestIDHeaderName = "X-Request-ID"

const maxErrorBody = 16 << 10

// HTTPClient talks to the storefront REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	headers http.Header
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying transport (timeouts, test servers).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// WithHeader adds a header to every API call. JSON headers cannot be
// overridden this way.
func WithHeader(key, value string) Option {
	return func(c *HTTPClient) {
		c.headers.Add(key, value)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = l
	}
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		headers: http.Header{},
		logger:  logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL joins the base address and path with exactly one separator.
func (c *HTTPClient) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// call performs one request. in is JSON-encoded when non-nil; out receives
// the decoded body when non-nil.
func (c *HTTPClient) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeaderName, requestID)
	ctx = logging.WithRequestID(ctx, requestID)

	c.logger.Debug(ctx, "api call", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(b))}
		c.logger.Debug(ctx, "api call failed", "status", resp.StatusCode)
		return httpErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, req api.LoginRequest) (*api.User, error) {
	var user api.User
	if err := c.call(ctx, http.MethodPost, "/auth/login", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Register(ctx context.Context, req api.RegisterRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.call(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Gallery(ctx context.Context) ([]api.Artwork, error) {
	var artworks []api.Artwork
	if err := c.call(ctx, http.MethodGet, "/gallery", nil, &artworks); err != nil {
		return nil, err
	}
	return artworks, nil
}

func (c *HTTPClient) Purchased(ctx context.Context, username string) ([]api.Artwork, error) {
	var artworks []api.Artwork
	path := "/profile/purchased?username=" + url.QueryEscape(username)
	if err := c.call(ctx, http.MethodGet, path, nil, &artworks); err != nil {
		return nil, err
	}
	return artworks, nil
}

func (c *HTTPClient) Purchase(ctx context.Context, req api.PurchaseRequest) (*api.PurchaseResponse, error) {
	var resp api.PurchaseResponse
	if err := c.call(ctx, http.MethodPost, "/purchase", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Profile(ctx context.Context, username string) (*api.User, error) {
	var user api.User
	path := "/profile/me?username=" + url.QueryEscape(username)
	if err := c.call(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.call(ctx, http.MethodPut, "/profile", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Topup(ctx context.Context, req api.TopupRequest) (*api.TopupResponse, error) {
	var resp api.TopupResponse
	if err := c.call(ctx, http.MethodPost, "/profile/topup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Presign(ctx context.Context, req api.PresignRequest) (*api.PresignResponse, error) {
	var resp api.PresignResponse
	if err := c.call(ctx, http.MethodPost, "/s3/presign", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload goes straight to the object store; the API headers are not sent.
func (c *HTTPClient) Upload(ctx context.Context, uploadURL string, contentType string, data []byte) error {
	err := netx.PutPresigned(ctx, c.http, uploadURL, contentType, data)
	if err == nil {
		return nil
	}
	var se *netx.StatusError
	if errors.As(err, &se) {
		return &UploadError{Err: &HTTPError{StatusCode: se.StatusCode, Status: se.Status, Body: se.Body}}
	}
	return &UploadError{Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
}
