package catalog

import (
	"errors"

	"storefront/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/items/:code", h.HandleGetItemDetail)
}

// HandleGetItemDetail returns a sales item with picture integrity status.
// @Summary Get Sales Item Detail
// @Description Get a sales item by code, including whether its picture exists in storage.
// @Tags catalog
// @Accept json
// @Produce json
// @Param code path string true "Item Code (e.g. 'B2')"
// @Success 200 {object} ItemDetail "Item Detail"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/items/{code} [get]
func (h *Handler) HandleGetItemDetail(c *fiber.Ctx) error {
	code := c.Params("code")
	l := logger.WithRayID(h.service.logger, c)

	detail, err := h.service.GetItemDetail(c.Context(), code)
	if errors.Is(err, ErrItemNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "item not found",
		})
	}
	if err != nil {
		l.Error("Item detail lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(detail)
}
