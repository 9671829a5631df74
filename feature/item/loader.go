package item

import (
	"manifest-resolver/core/manifest"
	"manifest-resolver/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Item feature.
func NewFeature(store *manifest.Store, cfg Config, logger *zap.Logger, m *metrics.Metrics) (*Feature, error) {
	engine, err := NewEngine(store, cfg, logger, m)
	if err != nil {
		return nil, err
	}
	svc := NewService(engine, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}, nil
}

// Service exposes the feature's service for command-line use.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "item"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
