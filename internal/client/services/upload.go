package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/models"
	"github.com/dmitrijs2005/artstore/internal/common"
	"github.com/dmitrijs2005/artstore/internal/logging"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxUploadSize caps image uploads at 5 MiB.
	MaxUploadSize = 5 << 20
	// ProfileFolder is the object-store prefix for profile photos.
	ProfileFolder = "profiles"

	fallbackExtension = "jpg"
)

// AllowedImageTypes is the upload allow-list.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// UploadService moves a local image to object storage in two steps:
// presign through the API, then PUT the bytes straight to the store.
type UploadService interface {
	// Prepare reads and validates a local file. No network is used.
	Prepare(path, folder string) (*models.PendingUpload, error)
	// Upload sends a prepared file and returns its storage key.
	Upload(ctx context.Context, p *models.PendingUpload) (string, error)
}

type uploadService struct {
	client client.Client
	logger logging.Logger
	now    func() time.Time
	token  func(n int) (string, error)
}

func NewUploadService(c client.Client, logger logging.Logger) UploadService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &uploadService{client: c, logger: logger, now: time.Now, token: common.RandomToken}
}

func (s *uploadService) Prepare(path, folder string) (*models.PendingUpload, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &client.ValidationError{Field: "image", Reason: fmt.Sprintf("cannot be read: %v", err)}
	}
	if fi.IsDir() {
		return nil, &client.ValidationError{Field: "image", Reason: "is a directory"}
	}
	if fi.Size() > MaxUploadSize {
		return nil, &client.ValidationError{Field: "image", Reason: "must be smaller than 5MB"}
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, &client.ValidationError{Field: "image", Reason: fmt.Sprintf("cannot be read: %v", err)}
	}
	contentType := baseType(mt.String())
	if !isAllowedImage(contentType) {
		return nil, &client.ValidationError{Field: "image", Reason: "must be a JPEG, PNG, GIF or WebP file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &client.ValidationError{Field: "image", Reason: fmt.Sprintf("cannot be read: %v", err)}
	}

	p := &models.PendingUpload{Path: path, Data: data, ContentType: contentType, Folder: folder}
	// the file may have grown between Stat and ReadFile
	if err := validatePending(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *uploadService) Upload(ctx context.Context, p *models.PendingUpload) (string, error) {
	if err := validatePending(p); err != nil {
		return "", err
	}

	filename, err := s.filename(p.Path)
	if err != nil {
		return "", err
	}
	p.Filename = filename

	resp, err := s.client.Presign(ctx, api.PresignRequest{
		Folder:      p.Folder,
		Filename:    filename,
		ContentType: p.ContentType,
	})
	if err != nil {
		return "", &client.PresignError{Err: err}
	}

	if err := s.client.Upload(ctx, resp.UploadURL, p.ContentType, p.Data); err != nil {
		var ue *client.UploadError
		if !errors.As(err, &ue) {
			err = &client.UploadError{Err: err}
		}
		return "", err
	}

	s.logger.Debug(ctx, "image uploaded", "key", resp.Key, "bytes", p.Size())
	return resp.Key, nil
}

// filename builds profile_<unix millis>_<6 base36 chars>.<ext>.
func (s *uploadService) filename(path string) (string, error) {
	tok, err := s.token(6)
	if err != nil {
		return "", fmt.Errorf("generate filename: %w", err)
	}
	return fmt.Sprintf("profile_%d_%s.%s", s.now().UnixMilli(), tok, extension(path)), nil
}

func extension(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return fallbackExtension
	}
	return ext
}

func validatePending(p *models.PendingUpload) error {
	if p == nil || len(p.Data) == 0 {
		return &client.ValidationError{Field: "image", Reason: "is empty"}
	}
	if p.Size() > MaxUploadSize {
		return &client.ValidationError{Field: "image", Reason: "must be smaller than 5MB"}
	}
	if !isAllowedImage(p.ContentType) {
		return &client.ValidationError{Field: "image", Reason: "must be a JPEG, PNG, GIF or WebP file"}
	}
	return nil
}

func isAllowedImage(contentType string) bool {
	return slices.Contains(AllowedImageTypes, contentType)
}

func baseType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}
