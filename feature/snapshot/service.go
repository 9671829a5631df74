package snapshot

import (
	"context"
	"errors"
	"time"

	"manifest-resolver/core/manifest"
	"manifest-resolver/core/storage"
	"manifest-resolver/feature/snapshot/checks"

	"go.uber.org/zap"
)

// ErrStorageNotConfigured is returned for operations that need object storage
// when the service runs without it.
var ErrStorageNotConfigured = errors.New("object storage is not configured")

// Status describes the snapshot currently served.
type Status struct {
	Loaded   bool                          `json:"loaded"`
	Version  string                        `json:"version"`
	LoadedAt *time.Time                    `json:"loaded_at,omitempty"`
	Matched  bool                          `json:"matched"`
	Tables   map[string]checks.TableReport `json:"tables"`
	Errors   []string                      `json:"errors"`
}

// ReloadResult describes a completed reload.
type ReloadResult struct {
	Version  string `json:"version"`
	Previous string `json:"previous"`
	Pulled   bool   `json:"pulled"`
}

// Service reports on and reloads the definition snapshot.
type Service struct {
	store    *manifest.Store
	reloader *manifest.Reloader
	client   storage.Client
	bucket   string
	cfg      manifest.Config
	locale   string
	logger   *zap.Logger
}

// NewService creates a new snapshot service. client may be nil when snapshots
// are only read from disk.
func NewService(store *manifest.Store, reloader *manifest.Reloader, client storage.Client, bucket string, cfg manifest.Config, locale string, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		reloader: reloader,
		client:   client,
		bucket:   bucket,
		cfg:      cfg,
		locale:   locale,
		logger:   logger,
	}
}

// Status reports the served snapshot and its schema.
func (s *Service) Status() (*Status, error) {
	snap, err := s.store.Snapshot()
	if errors.Is(err, manifest.ErrStoreUnavailable) {
		return &Status{Tables: map[string]checks.TableReport{}, Errors: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}

	report, err := checks.CheckSchema(snap.DB())
	if err != nil {
		return nil, err
	}

	loadedAt := snap.LoadedAt()
	return &Status{
		Loaded:   true,
		Version:  snap.Version(),
		LoadedAt: &loadedAt,
		Matched:  report.Matched,
		Tables:   report.Tables,
		Errors:   report.Errors,
	}, nil
}

// Reload swaps in the snapshot on disk, first pulling it from object storage
// when pull is set.
func (s *Service) Reload(ctx context.Context, pull bool) (*ReloadResult, error) {
	result := &ReloadResult{Previous: s.store.Version()}

	if pull {
		if s.client == nil {
			return nil, ErrStorageNotConfigured
		}
		updated, _, err := manifest.Pull(ctx, s.client, s.bucket, s.cfg, s.locale, s.logger)
		if err != nil {
			return nil, err
		}
		result.Pulled = updated
	}

	snap, err := s.reloader.Reload(ctx)
	if err != nil {
		return nil, err
	}
	result.Version = snap.Version()
	return result, nil
}

// Published reports the snapshot artifacts available in object storage.
func (s *Service) Published(ctx context.Context) (*checks.PublishedReport, error) {
	if s.client == nil {
		return nil, ErrStorageNotConfigured
	}
	return checks.CheckPublished(ctx, s.client, s.bucket, s.cfg, s.locale)
}
