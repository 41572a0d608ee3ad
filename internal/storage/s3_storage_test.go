package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/rutasloja/rutas-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, baseURL string) *S3Storage {
	t.Helper()
	s, err := NewS3Storage(context.Background(), config.S3Config{
		Region:          "us-east-1",
		Bucket:          "rutas-test",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		BaseURL:         baseURL,
	})
	require.NoError(t, err)
	return s
}

func TestPresignUpload(t *testing.T) {
	s := newTestStorage(t, "")

	upload, err := s.PresignUpload(context.Background(), FolderCovers, "Portada.JPG", "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "covers/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".jpg"))
	assert.Equal(t, "https://rutas-test.s3.us-east-1.amazonaws.com/"+upload.Key, upload.FileURL)

	parsed, err := url.Parse(upload.UploadURL)
	require.NoError(t, err)
	assert.Contains(t, parsed.Path, upload.Key)
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "900", parsed.Query().Get("X-Amz-Expires"))
}

func TestPresignUpload_BaseURL(t *testing.T) {
	s := newTestStorage(t, "https://cdn.example.com/")

	upload, err := s.PresignUpload(context.Background(), FolderPlaces, "a.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.FileURL)
}

func TestPresignUpload_RejectsNonImages(t *testing.T) {
	s := newTestStorage(t, "")

	_, err := s.PresignUpload(context.Background(), FolderCovers, "doc.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrContentTypeNotAllowed)
}
