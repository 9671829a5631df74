package search

import (
	"errors"
	"net/url"

	"manifest-resolver/core/logger"
	"manifest-resolver/core/manifest"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Envelope is the response shape expected by the presentation layer.
type Envelope struct {
	Response ResponseBody `json:"Response"`
}

// ResponseBody wraps the result page.
type ResponseBody struct {
	Results ResultPage `json:"results"`
}

// ResultPage holds the ordered search results.
type ResultPage struct {
	Results      []manifest.SearchResult `json:"results"`
	TotalResults int                     `json:"totalResults"`
}

// NewEnvelope wraps results for the presentation layer.
func NewEnvelope(results []manifest.SearchResult) Envelope {
	if results == nil {
		results = []manifest.SearchResult{}
	}
	return Envelope{Response: ResponseBody{Results: ResultPage{Results: results, TotalResults: len(results)}}}
}

// Handler handles HTTP requests for search.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the search routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/search")
	group.Get("/", h.HandleSearchQuery)
	group.Get("/:term", h.HandleSearch)
}

// HandleSearch searches items by display name.
// @Summary Search Items
// @Description Case-sensitive substring match on item display names, at most 20 results in store order.
// @Tags search
// @Produce json
// @Param term path string true "Search term (e.g. 'Ace of')"
// @Success 200 {object} Envelope "Search results"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/search/{term} [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	term, err := url.PathUnescape(c.Params("term"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid search term",
		})
	}
	return h.respond(c, term)
}

// HandleSearchQuery searches items by display name given in the q parameter.
// @Summary Search Items (query)
// @Description Same as /api/search/{term} with the term passed as a query parameter.
// @Tags search
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} Envelope "Search results"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/search [get]
func (h *Handler) HandleSearchQuery(c *fiber.Ctx) error {
	return h.respond(c, c.Query("q"))
}

func (h *Handler) respond(c *fiber.Ctx, term string) error {
	l := logger.WithRayID(h.service.logger, c)

	results, err := h.service.Search(c.UserContext(), term)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, manifest.ErrStoreUnavailable) {
			status = fiber.StatusServiceUnavailable
		} else {
			l.Error("Search failed", zap.String("term", term), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(NewEnvelope(results))
}
