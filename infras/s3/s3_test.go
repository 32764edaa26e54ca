package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"folio/config"
	"folio/infras/otel/mocks"
	"folio/infras/s3"
)

func TestKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "folio"
	cfg.External.S3.APIEndpoint = "https://account.r2.example.com/"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"

	store := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://cdn.example.com/images/a.jpg", want: "images/a.jpg"},
		{url: "https://account.r2.example.com/folio/images/b.png", want: "images/b.png"},
		{url: "https://cdn.example.com/", want: ""},
		{url: "https://elsewhere.example.com/images/c.jpg", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, store.KeyFromURL(tt.url))
		})
	}
}

func TestKeyFromURL_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "folio"
	cfg.External.S3.PublicDomain = "https://cdn.example.com"

	store := s3.New(cfg, mocks.NewOtel())

	assert.Empty(t, store.KeyFromURL("/folio/images/a.jpg"))
	assert.Equal(t, "images/a.jpg", store.KeyFromURL("https://cdn.example.com/images/a.jpg"))
}
