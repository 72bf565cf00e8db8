package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/artstore/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presignConfig() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "artstore",
		PresignExpiry:  5 * time.Minute,
	}
}

func TestStorageKey(t *testing.T) {
	tests := []struct {
		folder   string
		filename string
		want     string
		wantErr  bool
	}{
		{"profiles", "profile_1_abc.png", "profiles/profile_1_abc.png", false},
		{"/profiles/", "a.jpg", "profiles/a.jpg", false},
		{"art/2024", "a.jpg", "art/2024/a.jpg", false},
		{"", "a.jpg", "", true},
		{"profiles/../secret", "a.jpg", "", true},
		{"profiles", "../a.jpg", "", true},
		{"profiles", "..", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.folder+"|"+tt.filename, func(t *testing.T) {
			got, err := StorageKey(tt.folder, tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("random name", func(t *testing.T) {
		got, err := StorageKey("profiles", "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "profiles/"), got)
		assert.Len(t, strings.Split(got, "/"), 5)
	})
}

func TestPresignPut_SignsRealURL(t *testing.T) {
	svc := NewPresignService(presignConfig())

	key, raw, err := svc.PresignPut(context.Background(), "profiles", "profile_1_abc.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "profiles/profile_1_abc.png", key)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/artstore/profiles/profile_1_abc.png", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "content-type")
}

func TestPresignPut_RejectsNonImage(t *testing.T) {
	svc := NewPresignService(presignConfig())
	_, _, err := svc.PresignPut(context.Background(), "profiles", "a.txt", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPresignPut_Errors(t *testing.T) {
	origLoad, origNewS3, origNewPre, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
	})

	svc := NewPresignService(presignConfig())

	t.Run("config load", func(t *testing.T) {
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("load-fail")
		}
		_, _, err := svc.PresignPut(context.Background(), "profiles", "a.png", "image/png")
		require.Error(t, err)
		assert.Equal(t, "load-fail", err.Error())
	})

	t.Run("presign", func(t *testing.T) {
		var capturedBaseEndpoint string
		var pathStyle bool
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			var lo awsconfig.LoadOptions
			for _, fn := range optFns {
				require.NoError(t, fn(&lo))
			}
			assert.Equal(t, "us-east-1", lo.Region)
			return aws.Config{}, nil
		}
		newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
			var opts s3.Options
			for _, fn := range optFns {
				fn(&opts)
			}
			capturedBaseEndpoint = aws.ToString(opts.BaseEndpoint)
			pathStyle = opts.UsePathStyle
			return &s3.Client{}
		}
		newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
		presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
			assert.Equal(t, "artstore", aws.ToString(in.Bucket))
			assert.Equal(t, "profiles/a.png", aws.ToString(in.Key))
			assert.Equal(t, "image/png", aws.ToString(in.ContentType))
			return nil, errors.New("presign-put-fail")
		}

		_, _, err := svc.PresignPut(context.Background(), "profiles", "a.png", "image/png")
		require.Error(t, err)
		assert.Equal(t, "presign-put-fail", err.Error())
		assert.Equal(t, "http://127.0.0.1:9000", capturedBaseEndpoint)
		assert.True(t, pathStyle)
	})
}
