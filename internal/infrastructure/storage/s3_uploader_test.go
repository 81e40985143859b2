package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// mockS3Client implements s3Client for testing.
type mockS3Client struct {
	objects     map[string][]byte
	contentType string
	putErr      error
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(input.Key)] = data
	m.contentType = aws.ToString(input.ContentType)
	return &s3.PutObjectOutput{}, nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestUploader(max int64) (*S3Uploader, *mockS3Client) {
	mock := &mockS3Client{objects: make(map[string][]byte)}
	return &S3Uploader{
		client: mock,
		cfg: Config{
			Bucket:        "airion",
			Region:        "us-east-1",
			PublicBaseURL: "https://cdn.example.com/",
			MaxImageBytes: max,
		},
	}, mock
}

func TestS3Uploader_Upload(t *testing.T) {
	u, mock := newTestUploader(1024)

	url, err := u.Upload(context.Background(), "vendors/abc", domain.Image{
		Body: bytes.NewReader(pngHeader),
		Size: int64(len(pngHeader)),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/vendors/abc/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
	require.Len(t, mock.objects, 1)
	assert.Equal(t, "image/png", mock.contentType)
}

func TestS3Uploader_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		max     int64
		image   domain.Image
		putErr  error
		wantErr error
	}{
		{
			name:    "declared size over limit",
			max:     8,
			image:   domain.Image{Body: bytes.NewReader(pngHeader), Size: 100},
			wantErr: domain.ErrImageTooLarge,
		},
		{
			name:    "body larger than declared",
			max:     8,
			image:   domain.Image{Body: bytes.NewReader(pngHeader), Size: 4},
			wantErr: domain.ErrImageTooLarge,
		},
		{
			name:    "not an image",
			max:     1024,
			image:   domain.Image{Body: strings.NewReader("%PDF-1.4 hello"), Size: 14},
			wantErr: domain.ErrUnsupportedImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, mock := newTestUploader(tt.max)
			_, err := u.Upload(context.Background(), "vendors/x", tt.image)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, mock.objects)
		})
	}
}

func TestS3Uploader_PutFailure(t *testing.T) {
	u, mock := newTestUploader(1024)
	mock.putErr = errors.New("bucket gone")

	_, err := u.Upload(context.Background(), "vendors/x", domain.Image{Body: bytes.NewReader(pngHeader), Size: 16})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestS3Uploader_Unconfigured(t *testing.T) {
	u := NewS3Uploader(Config{MaxImageBytes: 1024})

	_, err := u.Upload(context.Background(), "vendors/x", domain.Image{Body: bytes.NewReader(pngHeader), Size: 16})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestS3Uploader_PublicURLFallbacks(t *testing.T) {
	withEndpoint := &S3Uploader{cfg: Config{Endpoint: "http://minio:9000/", Bucket: "b"}}
	assert.Equal(t, "http://minio:9000/b/k.png", withEndpoint.publicURL("k.png"))

	amazon := &S3Uploader{cfg: Config{Bucket: "b", Region: "eu-west-1"}}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k.png", amazon.publicURL("k.png"))
}
