package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	Endpoint      string
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	MaxImageBytes int64
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// S3Uploader implements domain.ImageStorage on an S3-compatible bucket
type S3Uploader struct {
	client s3Client
	cfg    Config
}

// NewS3Uploader creates an uploader; without bucket credentials every
// upload fails with domain.ErrStorageUnavailable.
func NewS3Uploader(cfg Config) domain.ImageStorage {
	u := &S3Uploader{cfg: cfg}
	if cfg.Bucket != "" && cfg.AccessKey != "" && cfg.SecretKey != "" {
		u.client = newS3Client(cfg)
	}
	return u
}

func newS3Client(cfg Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Upload implements domain.ImageStorage
func (u *S3Uploader) Upload(ctx context.Context, keyPrefix string, image domain.Image) (string, error) {
	if u.client == nil {
		return "", domain.ErrStorageUnavailable
	}
	if image.Size > u.cfg.MaxImageBytes {
		return "", domain.ErrImageTooLarge
	}

	// the declared size can lie, so read at most one byte past the limit
	data, err := io.ReadAll(io.LimitReader(image.Body, u.cfg.MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > u.cfg.MaxImageBytes {
		return "", domain.ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return "", domain.ErrUnsupportedImage
	}

	key := fmt.Sprintf("%s/%s.%s", strings.Trim(keyPrefix, "/"), uuid.NewString(), ext)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	return u.publicURL(key), nil
}

func (u *S3Uploader) publicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.cfg.Endpoint, "/"), u.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
