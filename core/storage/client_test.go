package storage_test

import (
	"testing"

	"manifest-resolver/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		cfg    storage.Config
		host   string
		secure bool
	}{
		{"bare host", storage.Config{Endpoint: "localhost:9000"}, "localhost:9000", false},
		{"bare host with ssl", storage.Config{Endpoint: "minio.internal", UseSSL: true}, "minio.internal", true},
		{"http scheme", storage.Config{Endpoint: "http://localhost:9000/"}, "localhost:9000", false},
		{"https scheme forces tls", storage.Config{Endpoint: "https://s3.amazonaws.com"}, "s3.amazonaws.com", true},
		{"whitespace", storage.Config{Endpoint: "  cdn.example.net  "}, "cdn.example.net", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure := storage.Endpoint(tt.cfg)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.secure, secure)
		})
	}
}

func TestNewClient(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "manifests",
			Region:    "us-east-1",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("https endpoint", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Endpoint:       "https://s3.amazonaws.com",
			AccessKey:      "testkey",
			SecretKey:      "testsecret",
			TimeoutSeconds: 5,
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("empty endpoint", func(t *testing.T) {
		_, err := storage.NewClient(storage.Config{Endpoint: "https://"})
		assert.ErrorContains(t, err, "endpoint is empty")
	})
}
