package item

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"manifest-resolver/core/manifest"
	"manifest-resolver/core/metrics"
	"manifest-resolver/feature/item/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine expands a base item record into a hydrated view.
type Engine struct {
	store          *manifest.Store
	perkCategories map[manifest.Category]struct{}
	workers        int
	logger         *zap.Logger
	metrics        *metrics.Metrics
}

// NewEngine creates a hydration engine reading from store.
func NewEngine(store *manifest.Store, cfg Config, logger *zap.Logger, m *metrics.Metrics) (*Engine, error) {
	categories, err := manifest.ParseCategories(cfg.PerkCategories)
	if err != nil {
		return nil, fmt.Errorf("invalid perk categories: %w", err)
	}
	if len(categories) == 0 {
		categories = []manifest.Category{manifest.CategoryWeaponPerk}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	set := make(map[manifest.Category]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}

	return &Engine{
		store:          store,
		perkCategories: set,
		workers:        cfg.Workers,
		logger:         logger,
		metrics:        m,
	}, nil
}

// lookups holds everything resolved for one hydration. Each field is written
// by exactly one goroutine.
type lookups struct {
	stats    map[uint32]*manifest.StatDefinition
	fixed    map[uint32]*manifest.ItemDefinition
	plugSets map[uint32]*manifest.PlugSetDefinition
	plugs    map[uint32]*manifest.ItemDefinition
}

// Hydrate resolves the item stored under key.
// It returns manifest.ErrNotFound if the item is absent and
// manifest.ErrStoreUnavailable if no snapshot is loaded. Missing or corrupt
// referenced records only reduce the enrichment of the result.
func (e *Engine) Hydrate(ctx context.Context, key uint32) (*models.Item, error) {
	start := time.Now()
	item, err := e.hydrate(ctx, key)
	e.metrics.RecordHydration(hydrationResult(err), time.Since(start))
	return item, err
}

func (e *Engine) hydrate(ctx context.Context, key uint32) (*models.Item, error) {
	// Pin one snapshot so a concurrent swap is never half observed.
	snap, err := e.store.Snapshot()
	if err != nil {
		return nil, err
	}

	base, err := snap.Item(ctx, key)
	if err != nil {
		return nil, err
	}

	l := e.logger.With(zap.Uint32("hash", key), zap.String("snapshot", snap.Version()))
	res := lookups{}

	var g errgroup.Group
	g.SetLimit(e.workers)

	if statHashes := collectStatHashes(base); len(statHashes) > 0 {
		g.Go(func() error {
			stats, err := snap.Stats(ctx, statHashes)
			if err != nil {
				l.Warn("Stat enrichment failed", zap.Error(err))
				return nil
			}
			res.stats = stats
			return nil
		})
	}

	fixedHashes, setHashes := collectSocketHashes(base)
	if len(fixedHashes) > 0 {
		g.Go(func() error {
			fixed, err := snap.Items(ctx, fixedHashes)
			if err != nil {
				l.Warn("Fixed plug lookup failed", zap.Error(err))
				return nil
			}
			res.fixed = fixed
			return nil
		})
	}
	if len(setHashes) > 0 {
		g.Go(func() error {
			sets, err := snap.PlugSets(ctx, setHashes)
			if err != nil {
				l.Warn("Plug set lookup failed", zap.Error(err))
				return nil
			}
			res.plugSets = sets

			plugHashes := collectPlugHashes(setHashes, sets)
			if len(plugHashes) == 0 {
				return nil
			}
			plugs, err := snap.Items(ctx, plugHashes)
			if err != nil {
				l.Warn("Plug item lookup failed", zap.Error(err))
				return nil
			}
			res.plugs = plugs
			return nil
		})
	}

	g.Wait()

	// The caller gave up; whatever was resolved is discarded.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.assemble(base, res, l), nil
}

// assemble builds the view in the stored order of stats and sockets.
func (e *Engine) assemble(base *manifest.ItemDefinition, res lookups, l *zap.Logger) *models.Item {
	item := &models.Item{
		Hash:                base.Hash,
		DisplayProperties:   copyDisplay(base.DisplayProperties),
		ItemTypeDisplayName: base.ItemTypeDisplayName,
		FlavorText:          base.FlavorText,
		Perks:               []models.Perk{},
		RandomPerkColumns:   [][]models.Perk{},
	}

	if base.Stats != nil && base.Stats.Stats != nil {
		item.Stats = &models.Stats{Stats: make(map[string]models.Stat, len(base.Stats.Stats))}
		for id, value := range base.Stats.Stats {
			stat := models.Stat{StatHash: value.StatHash, Value: value.Value}
			if def, ok := res.stats[value.StatHash]; ok {
				stat.DisplayProperties = copyDisplay(def.DisplayProperties)
			} else {
				l.Debug("Stat definition missing", zap.String("stat", id), zap.Uint32("stat_hash", value.StatHash))
			}
			item.Stats.Stats[id] = stat
		}
	}

	if base.Sockets == nil {
		return item
	}

	for _, socket := range base.Sockets.SocketEntries {
		if h := socket.SingleInitialItemHash; h != 0 {
			if plug, ok := res.fixed[h]; ok && e.isPerk(plug) {
				item.Perks = append(item.Perks, toPerk(plug))
			}
		}

		setHash := socket.PlugSetHash()
		if setHash == 0 {
			continue
		}
		set, ok := res.plugSets[setHash]
		// Single-option sockets are not random.
		if !ok || len(set.ReusablePlugItems) <= 1 {
			continue
		}

		column := make([]models.Perk, 0, len(set.ReusablePlugItems))
		for _, entry := range set.ReusablePlugItems {
			if plug, ok := res.plugs[entry.PlugItemHash]; ok && isColumnCandidate(plug) {
				column = append(column, toPerk(plug))
			}
		}
		if len(column) > 0 {
			item.RandomPerkColumns = append(item.RandomPerkColumns, column)
		}
	}

	return item
}

// isPerk matches the verbatim label; case or width variants are not perks.
func (e *Engine) isPerk(plug *manifest.ItemDefinition) bool {
	_, ok := e.perkCategories[plug.LabelCategory]
	return ok
}

// isColumnCandidate reports whether a plug set member may be shown in a perk column.
func isColumnCandidate(plug *manifest.ItemDefinition) bool {
	return !plug.DisplayProperties.IsEmpty() &&
		plug.DisplayProperties.HasIcon &&
		plug.Category != manifest.CategoryShader
}

func toPerk(plug *manifest.ItemDefinition) models.Perk {
	return models.Perk{Hash: plug.Hash, DisplayProperties: copyDisplay(plug.DisplayProperties)}
}

// copyDisplay detaches the view from cached records.
func copyDisplay(d *manifest.DisplayProperties) *manifest.DisplayProperties {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func collectStatHashes(base *manifest.ItemDefinition) []uint32 {
	if base.Stats == nil {
		return nil
	}
	hashes := make([]uint32, 0, len(base.Stats.Stats))
	for _, v := range base.Stats.Stats {
		hashes = append(hashes, v.StatHash)
	}
	slices.Sort(hashes)
	return slices.Compact(hashes)
}

func collectSocketHashes(base *manifest.ItemDefinition) (fixed, sets []uint32) {
	if base.Sockets == nil {
		return nil, nil
	}
	for _, socket := range base.Sockets.SocketEntries {
		if socket.SingleInitialItemHash != 0 {
			fixed = append(fixed, socket.SingleInitialItemHash)
		}
		if h := socket.PlugSetHash(); h != 0 {
			sets = append(sets, h)
		}
	}
	return fixed, sets
}

// collectPlugHashes lists the members of every plug set able to form a column.
func collectPlugHashes(setHashes []uint32, sets map[uint32]*manifest.PlugSetDefinition) []uint32 {
	var hashes []uint32
	for _, h := range setHashes {
		set, ok := sets[h]
		if !ok || len(set.ReusablePlugItems) <= 1 {
			continue
		}
		for _, entry := range set.ReusablePlugItems {
			hashes = append(hashes, entry.PlugItemHash)
		}
	}
	return hashes
}

func hydrationResult(err error) string {
	switch {
	case err == nil:
		return metrics.HydrationOK
	case errors.Is(err, manifest.ErrNotFound):
		return metrics.HydrationNotFound
	case errors.Is(err, manifest.ErrStoreUnavailable):
		return metrics.HydrationUnavailable
	default:
		return metrics.HydrationError
	}
}
