package manifest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"manifest-resolver/core/database"
	"manifest-resolver/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// chunkSize keeps IN lists below SQLite's bound variable limit.
const chunkSize = 500

// Options configures a Snapshot.
type Options struct {
	// Version identifies the snapshot (e.g. the upstream content file name).
	Version string
	// Taxonomy classifies item category labels. Defaults to DefaultTaxonomy.
	Taxonomy *Taxonomy
	// Logger receives warnings about corrupt records.
	Logger *zap.Logger
	// Metrics records lookups. May be nil.
	Metrics *metrics.Metrics
	// CacheSize is the number of decoded records to keep. Zero disables caching.
	CacheSize int
	// Workers bounds concurrent chunk queries within one batch. Defaults to 4.
	Workers int
}

// Snapshot is one immutable version of the definition store.
// All methods are safe for concurrent use.
type Snapshot struct {
	db       *gorm.DB
	version  string
	loadedAt time.Time
	taxonomy *Taxonomy
	logger   *zap.Logger
	metrics  *metrics.Metrics
	cache    *recordCache
	workers  int

	sf singleflight.Group

	indexMu sync.RWMutex
	index   []SearchResult
}

// NewSnapshot wraps an open database connection as a snapshot.
func NewSnapshot(db *gorm.DB, opts Options) (*Snapshot, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: nil database", ErrStoreUnavailable)
	}
	if opts.Taxonomy == nil {
		opts.Taxonomy = DefaultTaxonomy()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	cache, err := newRecordCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		db:       db,
		version:  opts.Version,
		loadedAt: time.Now(),
		taxonomy: opts.Taxonomy,
		logger:   opts.Logger.With(zap.String("snapshot", opts.Version)),
		metrics:  opts.Metrics,
		cache:    cache,
		workers:  opts.Workers,
	}, nil
}

// Version returns the snapshot version.
func (s *Snapshot) Version() string { return s.version }

// LoadedAt returns when the snapshot was opened.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// DB exposes the underlying connection for schema inspection.
func (s *Snapshot) DB() *gorm.DB { return s.db }

// Close releases the snapshot's connection.
func (s *Snapshot) Close() error {
	return database.Close(s.db)
}

// Verify reports missing columns per required table. An empty map means the
// snapshot has the expected layout.
func (s *Snapshot) Verify() (map[Table][]string, error) {
	return VerifySchema(s.db)
}

// VerifySchema reports missing id/json columns per required table.
func VerifySchema(db *gorm.DB) (map[Table][]string, error) {
	problems := make(map[Table][]string)
	for _, table := range Tables {
		missing, err := database.MissingColumns(db, string(table), "id", "json")
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			problems[table] = missing
		}
	}
	return problems, nil
}

// Item returns the inventory item with the given key.
func (s *Snapshot) Item(ctx context.Context, id uint32) (*ItemDefinition, error) {
	return getOne(ctx, s, TableInventoryItem, id, s.classify)
}

// Items returns the inventory items present among ids.
func (s *Snapshot) Items(ctx context.Context, ids []uint32) (map[uint32]*ItemDefinition, error) {
	return getMany(ctx, s, TableInventoryItem, ids, s.classify)
}

// Stat returns the stat definition with the given key.
func (s *Snapshot) Stat(ctx context.Context, id uint32) (*StatDefinition, error) {
	return getOne[StatDefinition](ctx, s, TableStat, id, nil)
}

// Stats returns the stat definitions present among ids.
func (s *Snapshot) Stats(ctx context.Context, ids []uint32) (map[uint32]*StatDefinition, error) {
	return getMany[StatDefinition](ctx, s, TableStat, ids, nil)
}

// PlugSet returns the plug set with the given key.
func (s *Snapshot) PlugSet(ctx context.Context, id uint32) (*PlugSetDefinition, error) {
	return getOne[PlugSetDefinition](ctx, s, TablePlugSet, id, nil)
}

// PlugSets returns the plug sets present among ids.
func (s *Snapshot) PlugSets(ctx context.Context, ids []uint32) (map[uint32]*PlugSetDefinition, error) {
	return getMany[PlugSetDefinition](ctx, s, TablePlugSet, ids, nil)
}

func (s *Snapshot) classify(d *ItemDefinition) {
	d.Category = s.taxonomy.Classify(d.ItemTypeDisplayName)
	d.LabelCategory = s.taxonomy.ClassifyExact(d.ItemTypeDisplayName)
}

// getOne looks up a single record. Concurrent misses for the same key share
// one query and decode. The shared query is detached from every caller's
// cancellation; a caller that gives up stops waiting without failing the others.
func getOne[T any, P definition[T]](ctx context.Context, s *Snapshot, table Table, id uint32, finish func(*T)) (*T, error) {
	if rec, ok := s.cache.get(table, id); ok {
		s.metrics.RecordLookup(string(table), metrics.ResultCached, 1)
		return rec.(*T), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detached := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(fmt.Sprintf("%s:%d", table, id), func() (any, error) {
		rows, err := s.raw(detached, table, []uint32{id})
		if err != nil {
			s.metrics.RecordLookup(string(table), metrics.ResultError, 1)
			return nil, err
		}
		data, ok := rows[id]
		if !ok {
			s.metrics.RecordLookup(string(table), metrics.ResultMissing, 1)
			return nil, ErrNotFound
		}
		rec, err := decode[T, P](id, data)
		if err != nil {
			s.metrics.RecordLookup(string(table), metrics.ResultCorrupt, 1)
			return nil, &CorruptRecordError{Table: table, ID: id, Err: err}
		}
		if finish != nil {
			finish(rec)
		}
		s.metrics.RecordLookup(string(table), metrics.ResultFound, 1)
		s.cache.add(table, id, rec)
		return rec, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}

// getMany looks up a batch of records. Absent keys are omitted. Corrupt
// records are omitted and logged; the batch only fails when every record that
// was found is corrupt.
func getMany[T any, P definition[T]](ctx context.Context, s *Snapshot, table Table, ids []uint32, finish func(*T)) (map[uint32]*T, error) {
	out := make(map[uint32]*T, len(ids))

	var pending []uint32
	seen := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := s.cache.get(table, id); ok {
			out[id] = rec.(*T)
			continue
		}
		pending = append(pending, id)
	}
	s.metrics.RecordLookup(string(table), metrics.ResultCached, len(out))

	if len(pending) == 0 {
		return out, nil
	}

	rows, err := s.raw(ctx, table, pending)
	if err != nil {
		s.metrics.RecordLookup(string(table), metrics.ResultError, len(pending))
		return nil, err
	}
	s.metrics.RecordLookup(string(table), metrics.ResultMissing, len(pending)-len(rows))

	var corrupt []error
	for id, data := range rows {
		rec, err := decode[T, P](id, data)
		if err != nil {
			cerr := &CorruptRecordError{Table: table, ID: id, Err: err}
			s.logger.Warn("Skipping corrupt definition", zap.String("table", string(table)), zap.Uint32("hash", id), zap.Error(err))
			corrupt = append(corrupt, cerr)
			continue
		}
		if finish != nil {
			finish(rec)
		}
		s.cache.add(table, id, rec)
		out[id] = rec
	}
	s.metrics.RecordLookup(string(table), metrics.ResultCorrupt, len(corrupt))
	s.metrics.RecordLookup(string(table), metrics.ResultFound, len(rows)-len(corrupt))

	if len(corrupt) > 0 && len(corrupt) == len(rows) && len(out) == 0 {
		return nil, errors.Join(corrupt...)
	}
	return out, nil
}

type rawRow struct {
	ID   int64  `gorm:"column:id"`
	JSON []byte `gorm:"column:json"`
}

// raw fetches stored documents by key, querying chunks concurrently.
func (s *Snapshot) raw(ctx context.Context, table Table, ids []uint32) (map[uint32][]byte, error) {
	out := make(map[uint32][]byte, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for start := 0; start < len(ids); start += chunkSize {
		chunk := ids[start:min(start+chunkSize, len(ids))]
		g.Go(func() error {
			keys := make([]int64, len(chunk))
			for i, id := range chunk {
				keys[i] = int64(id)
			}

			var rows []rawRow
			err := s.db.WithContext(gctx).
				Table(string(table)).
				Select("id", "json").
				Where("id IN ?", keys).
				Scan(&rows).Error
			if err != nil {
				return fmt.Errorf("failed to query %s: %w", table, err)
			}

			mu.Lock()
			for _, row := range rows {
				out[uint32(row.ID)] = row.JSON
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
