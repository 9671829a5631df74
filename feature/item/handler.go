package item

import (
	"context"
	"errors"

	"manifest-resolver/core/hashid"
	"manifest-resolver/core/logger"
	"manifest-resolver/core/manifest"
	"manifest-resolver/feature/item/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/item")
	group.Get("/key/:key", h.HandleGetItemByKey)
	group.Get("/:hash", h.HandleGetItem)
}

// HandleGetItem returns the hydrated view of an item.
// @Summary Get Item
// @Description Hydrate an item by its signed 32-bit identifier: stat names, fixed perks and random perk columns.
// @Tags item
// @Produce json
// @Param hash path string true "Signed item identifier (e.g. '-680797410')"
// @Success 200 {object} models.Item "Hydrated item"
// @Failure 400 {object} map[string]string "Invalid identifier"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/item/{hash} [get]
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	raw := c.Params("hash")
	return h.respond(c, raw, func(ctx context.Context) (*models.Item, error) {
		return h.service.GetItemByHash(ctx, raw)
	})
}

// HandleGetItemByKey returns the hydrated view of an item addressed by store key.
// @Summary Get Item By Key
// @Description Hydrate an item by its unsigned store key, as returned by search.
// @Tags item
// @Produce json
// @Param key path string true "Unsigned store key (e.g. '3614169886')"
// @Success 200 {object} models.Item "Hydrated item"
// @Failure 400 {object} map[string]string "Invalid key"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/item/key/{key} [get]
func (h *Handler) HandleGetItemByKey(c *fiber.Ctx) error {
	raw := c.Params("key")
	return h.respond(c, raw, func(ctx context.Context) (*models.Item, error) {
		return h.service.GetItemByKey(ctx, raw)
	})
}

func (h *Handler) respond(c *fiber.Ctx, raw string, get func(context.Context) (*models.Item, error)) error {
	l := logger.WithRayID(h.service.logger, c).With(zap.String("identifier", raw))

	item, err := get(c.UserContext())
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			l.Error("Item hydration failed", zap.Error(err))
		} else {
			l.Debug("Item lookup rejected", zap.Int("status", status), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(item)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, hashid.ErrInvalidIdentifier):
		return fiber.StatusBadRequest
	case errors.Is(err, manifest.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, manifest.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
