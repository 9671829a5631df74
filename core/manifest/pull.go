package manifest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"manifest-resolver/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectKeys returns the storage keys of the published snapshot and its version file.
func (c Config) ObjectKeys(locale string) (dbKey, versionKey string) {
	prefix := path.Join(c.ObjectPrefix, locale)
	return path.Join(prefix, c.File), path.Join(prefix, c.VersionFile)
}

// Pull copies the snapshot published in object storage into cfg.Dir when its
// version differs from the local one. The database file is replaced before the
// version file, so a watching Reloader only sees complete snapshots.
// It reports whether a new snapshot was written and the remote version.
func Pull(ctx context.Context, client storage.Client, bucket string, cfg Config, locale string, logger *zap.Logger) (bool, string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return false, "", fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return false, "", fmt.Errorf("bucket %s does not exist", bucket)
	}

	dbKey, versionKey := cfg.ObjectKeys(locale)

	remote, err := readObject(ctx, client, bucket, versionKey)
	if err != nil {
		return false, "", fmt.Errorf("failed to read remote version: %w", err)
	}
	version := strings.TrimSpace(string(remote))
	if version == "" {
		return false, "", fmt.Errorf("remote version file %s is empty", versionKey)
	}

	local, err := ReadVersion(cfg)
	if err != nil {
		return false, version, err
	}
	if local == version {
		logger.Info("Snapshot is up to date", zap.String("version", version))
		return false, version, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return false, version, fmt.Errorf("failed to create manifest dir: %w", err)
	}

	info, err := client.StatObject(ctx, bucket, dbKey, minio.StatObjectOptions{})
	if err != nil {
		return false, version, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	logger.Info("Downloading definition snapshot",
		zap.String("object", dbKey),
		zap.String("version", version),
		zap.Int64("size", info.Size),
		zap.String("etag", info.ETag),
	)

	reader, err := client.GetObject(ctx, bucket, dbKey, minio.GetObjectOptions{})
	if err != nil {
		return false, version, fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer reader.Close()

	if err := writeAtomic(cfg.DatabasePath(), reader, info.Size); err != nil {
		return false, version, err
	}
	if err := writeAtomic(cfg.VersionPath(), strings.NewReader(version), -1); err != nil {
		return false, version, err
	}

	logger.Info("Definition snapshot updated", zap.String("version", version), zap.String("previous", local))
	return true, version, nil
}

func readObject(ctx context.Context, client storage.Client, bucket, key string) ([]byte, error) {
	reader, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// writeAtomic writes r to a temporary file next to dst and renames it over dst.
// A non-negative size must match the number of bytes read, otherwise dst is
// left untouched.
func writeAtomic(dst string, r io.Reader, size int64) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(dst), err)
	}
	if size >= 0 && n != size {
		tmp.Close()
		return fmt.Errorf("truncated %s: got %d of %d bytes", filepath.Base(dst), n, size)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", filepath.Base(dst), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(dst), err)
	}
	return nil
}

// PublishedObject describes a snapshot artifact in object storage.
type PublishedObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ListPublished lists the artifacts published for locale.
func ListPublished(ctx context.Context, client storage.Client, bucket string, cfg Config, locale string) ([]PublishedObject, error) {
	prefix := path.Join(cfg.ObjectPrefix, locale) + "/"
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var out []PublishedObject
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		out = append(out, PublishedObject{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}
