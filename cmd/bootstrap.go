package cmd

import (
	"context"
	"fmt"

	"manifest-resolver/core/config"
	"manifest-resolver/core/manifest"
	"manifest-resolver/core/metrics"
	"manifest-resolver/core/storage"

	"go.uber.org/zap"
)

// snapshotOptions builds the options every snapshot is opened with.
func snapshotOptions(cfg *config.Config, logg *zap.Logger, m *metrics.Metrics) (manifest.Options, error) {
	taxonomy, err := manifest.LoadTaxonomy(cfg.Manifest.TaxonomyFile)
	if err != nil {
		return manifest.Options{}, err
	}
	return manifest.Options{
		Taxonomy:  taxonomy,
		Logger:    logg,
		Metrics:   m,
		CacheSize: cfg.Manifest.CacheSize,
		Workers:   cfg.Manifest.Workers,
	}, nil
}

// storageClient returns the object storage client when snapshots are pulled
// from storage, nil otherwise.
func storageClient(cfg *config.Config) (storage.Client, error) {
	if cfg.Manifest.Source != manifest.SourceStorage {
		return nil, nil
	}
	return storage.NewClient(cfg.Storage)
}

// openStore loads the snapshot on disk into a new store, pulling it from
// object storage first when client is set. A failed load leaves the store
// empty; the returned error describes why.
func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger, m *metrics.Metrics, client storage.Client) (*manifest.Store, *manifest.Reloader, error) {
	opts, err := snapshotOptions(cfg, logg, m)
	if err != nil {
		return nil, nil, err
	}

	store := manifest.NewStore(m)
	reloader := manifest.NewReloader(store, cfg.Manifest, cfg.Database, opts, logg)

	if client != nil {
		if _, _, err := manifest.Pull(ctx, client, cfg.Storage.Bucket, cfg.Manifest, cfg.Server.Locale, logg); err != nil {
			logg.Warn("Snapshot pull failed, using local copy", zap.Error(err))
		}
	}

	if _, err := reloader.Reload(ctx); err != nil {
		return store, reloader, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return store, reloader, nil
}
