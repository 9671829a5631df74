package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client is the read-only view of the bucket definition snapshots are published to.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// StatObject returns the metadata of one object without downloading it.
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	// GetObject streams an object.
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	// ListObjects lists objects in a bucket.
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// NewClient creates a MinIO backed Client from cfg.
func NewClient(cfg Config) (Client, error) {
	host, secure := Endpoint(cfg)
	if host == "" {
		return nil, fmt.Errorf("storage endpoint is empty")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	mc, err := minio.New(host, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    secure,
		Region:    cfg.Region,
		Transport: newTransport(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Connections are lazy; callers verify access with BucketExists.
	return &minioClient{Client: mc}, nil
}

// Endpoint returns the host MinIO dials and whether TLS is used.
// An explicit https:// scheme enables TLS even when UseSSL is false.
func Endpoint(cfg Config) (host string, secure bool) {
	host = strings.TrimSpace(cfg.Endpoint)
	secure = cfg.UseSSL
	if rest, ok := strings.CutPrefix(host, "https://"); ok {
		host, secure = rest, true
	} else if rest, ok := strings.CutPrefix(host, "http://"); ok {
		host = rest
	}
	return strings.TrimSuffix(host, "/"), secure
}

// newTransport bounds connection setup and the wait for response headers.
// Body reads of large snapshots are bounded by the caller's context instead.
func newTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: time.Second,
		ResponseHeaderTimeout: timeout,
	}
}

type minioClient struct {
	*minio.Client
}

func (c *minioClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucketName, objectName, opts)
}
