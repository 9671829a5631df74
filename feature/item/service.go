package item

import (
	"context"

	"manifest-resolver/core/hashid"
	"manifest-resolver/feature/item/models"

	"go.uber.org/zap"
)

// Service handles item hydration requests.
type Service struct {
	engine *Engine
	logger *zap.Logger
}

// NewService creates a new item service.
func NewService(engine *Engine, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logger,
	}
}

// GetItemByHash hydrates the item with the given signed identifier.
func (s *Service) GetItemByHash(ctx context.Context, raw string) (*models.Item, error) {
	key, err := hashid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return s.engine.Hydrate(ctx, key)
}

// GetItemByKey hydrates the item with the given unsigned store key.
func (s *Service) GetItemByKey(ctx context.Context, raw string) (*models.Item, error) {
	key, err := hashid.ParseKey(raw)
	if err != nil {
		return nil, err
	}
	return s.engine.Hydrate(ctx, key)
}
