package snapshot

import (
	"errors"

	"manifest-resolver/core/logger"
	"manifest-resolver/core/manifest"
	"manifest-resolver/feature/snapshot/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the definition snapshot.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.PublishedReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the snapshot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/snapshot")
	group.Get("/", h.HandleStatus)
	group.Post("/reload", h.HandleReload)
	group.Get("/published", h.HandlePublished)
}

// HandleStatus reports the served snapshot.
// @Summary Snapshot Status
// @Description Reports whether a snapshot is loaded, its version, and the schema of its tables.
// @Tags snapshot
// @Produce json
// @Success 200 {object} Status "Snapshot status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /snapshot [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	status, err := h.service.Status()
	if err != nil {
		l.Error("Snapshot status check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleReload swaps in the snapshot on disk.
// @Summary Reload Snapshot
// @Description Opens the snapshot on disk and swaps it in. With pull=true the snapshot is first synced from object storage.
// @Tags snapshot
// @Produce json
// @Param pull query boolean false "Pull from object storage first"
// @Success 200 {object} ReloadResult "Reload result"
// @Failure 400 {object} map[string]string "Object storage not configured"
// @Failure 503 {object} map[string]string "Snapshot could not be opened"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /snapshot/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	pull := c.Query("pull") == "true"

	l.Info("Reloading snapshot", zap.Bool("pull", pull))
	result, err := h.service.Reload(c.UserContext(), pull)
	if err != nil {
		l.Error("Snapshot reload failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, ErrStorageNotConfigured):
			status = fiber.StatusBadRequest
		case errors.Is(err, manifest.ErrStoreUnavailable):
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandlePublished lists the snapshot artifacts in object storage.
// @Summary Published Snapshot
// @Description Lists the snapshot artifacts published in object storage for the configured locale.
// @Tags snapshot
// @Produce json
// @Success 200 {object} checks.PublishedReport "Published artifacts"
// @Failure 400 {object} map[string]string "Object storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /snapshot/published [get]
func (h *Handler) HandlePublished(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Published(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrStorageNotConfigured) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Published snapshot check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
