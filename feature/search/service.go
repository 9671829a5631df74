package search

import (
	"context"

	"manifest-resolver/core/manifest"
	"manifest-resolver/core/metrics"

	"go.uber.org/zap"
)

// Service handles item name searches.
type Service struct {
	store   *manifest.Store
	limit   int
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates a new search service.
func NewService(store *manifest.Store, cfg Config, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		limit:   cfg.Limit,
		logger:  logger,
		metrics: m,
	}
}

// Search returns the items whose display name contains term.
// A blank term yields an empty result rather than an error.
func (s *Service) Search(ctx context.Context, term string) ([]manifest.SearchResult, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	results, err := snap.Search(ctx, term, s.limit)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSearch(len(results))
	return results, nil
}
