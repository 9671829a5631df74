package snapshot

import (
	"manifest-resolver/core/manifest"
	"manifest-resolver/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Snapshot feature.
func NewFeature(store *manifest.Store, reloader *manifest.Reloader, client storage.Client, bucket string, cfg manifest.Config, locale string, logger *zap.Logger) *Feature {
	svc := NewService(store, reloader, client, bucket, cfg, locale, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for command-line use.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "snapshot"
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
