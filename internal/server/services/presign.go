package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	sc "github.com/dmitrijs2005/artstore/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Presigner issues upload URLs for the object store.
type Presigner interface {
	PresignPut(ctx context.Context, folder, filename, contentType string) (key string, url string, err error)
}

// PresignService signs S3 PUT requests for the configured bucket. The
// content type is part of the signature, so the uploader must send the
// same Content-Type header.
type PresignService struct {
	config *sc.Config
}

func NewPresignService(config *sc.Config) *PresignService {
	return &PresignService{config: config}
}

// GetRandomStorageKey names an object when the caller supplies no filename.
func GetRandomStorageKey(folder string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v", folder, d.Year(), d.Month(), d.Day(), uuid.New())
}

// StorageKey validates folder and filename and joins them into an object
// key.
func StorageKey(folder, filename string) (string, error) {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return "", invalid("folder is required")
	}
	for _, seg := range strings.Split(folder, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", invalid("folder is invalid")
		}
	}
	if filename == "" {
		return GetRandomStorageKey(folder), nil
	}
	if strings.ContainsAny(filename, `/\`) || filename == "." || filename == ".." {
		return "", invalid("filename is invalid")
	}
	return path.Join(folder, filename), nil
}

func (s *PresignService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		// MinIO serves buckets by path
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *PresignService) PresignPut(ctx context.Context, folder, filename, contentType string) (string, string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", invalid("contentType must be an image type")
	}
	key, err := StorageKey(folder, filename)
	if err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}
