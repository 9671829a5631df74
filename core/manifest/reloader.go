package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"manifest-resolver/core/database"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader opens snapshots from disk and swaps them into a Store.
type Reloader struct {
	store    *Store
	cfg      Config
	dbCfg    database.Config
	opts     Options
	logger   *zap.Logger
	debounce time.Duration
	drain    time.Duration

	mu sync.Mutex // serializes reloads
}

// NewReloader creates a reloader for the snapshot described by cfg.
func NewReloader(store *Store, cfg Config, dbCfg database.Config, opts Options, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &Reloader{
		store:    store,
		cfg:      cfg,
		dbCfg:    dbCfg,
		opts:     opts,
		logger:   logger,
		debounce: 250 * time.Millisecond,
		drain:    time.Duration(cfg.DrainSeconds) * time.Second,
	}
}

// Reload opens the snapshot currently on disk and swaps it in. On failure the
// previously loaded snapshot keeps serving.
func (r *Reloader) Reload(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap, err := Open(r.cfg, r.dbCfg, r.opts)
	if err != nil {
		return nil, err
	}

	prev := r.store.Swap(snap)
	r.logger.Info("Definition snapshot loaded",
		zap.String("version", snap.Version()),
		zap.String("previous", versionOf(prev)))

	if prev != nil {
		r.retire(prev)
	}
	return snap, nil
}

// ReloadIfChanged reloads only when the version file differs from the served version.
func (r *Reloader) ReloadIfChanged(ctx context.Context) (bool, error) {
	version, err := ReadVersion(r.cfg)
	if err != nil {
		return false, err
	}
	if version != "" && version == r.store.Version() {
		return false, nil
	}
	if _, err := r.Reload(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// retire closes a replaced snapshot once in-flight requests had time to finish.
func (r *Reloader) retire(prev *Snapshot) {
	closeFn := func() {
		if err := prev.Close(); err != nil {
			r.logger.Warn("Failed to close retired snapshot", zap.String("version", prev.Version()), zap.Error(err))
		}
	}
	if r.drain <= 0 {
		closeFn()
		return
	}
	time.AfterFunc(r.drain, closeFn)
}

// Watch reloads the snapshot whenever the version file is written, until ctx
// is done. It returns once the watcher is running.
func (r *Reloader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(r.cfg.Dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go r.watchLoop(ctx, watcher)
	return nil
}

func (r *Reloader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var debounceTimer *time.Timer
	target := filepath.Base(r.cfg.VersionFile)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			// Rename covers writers that replace the file atomically.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(r.debounce, func() {
				changed, err := r.ReloadIfChanged(ctx)
				if err != nil {
					r.logger.Error("Snapshot reload failed, keeping current snapshot", zap.Error(err))
					return
				}
				if !changed {
					r.logger.Debug("Version file touched without a version change")
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("Snapshot watcher error", zap.Error(err))
		}
	}
}

func versionOf(s *Snapshot) string {
	if s == nil {
		return ""
	}
	return s.Version()
}
