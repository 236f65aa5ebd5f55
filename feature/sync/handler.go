package sync

import (
	"strconv"

	"storefront/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the warehouse-facing sync API and the administrative
// history listing.
type Handler struct {
	service    *Service
	tokenGuard fiber.Handler
	adminGuard fiber.Handler
}

// NewHandler creates a new HTTP handler. tokenGuard protects the
// warehouse endpoints, adminGuard the history listing.
func NewHandler(service *Service, tokenGuard, adminGuard fiber.Handler) *Handler {
	return &Handler{service: service, tokenGuard: tokenGuard, adminGuard: adminGuard}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api", h.tokenGuard)
	api.Post("/bulk_update", h.HandleBulkUpdate)
	api.Get("/purchases", h.HandlePurchaseExport)
	api.Post("/items/delete_all", h.HandleResetStore)

	app.Get("/sync/history", h.adminGuard, h.HandleHistory)
}

// HandleBulkUpdate applies one warehouse push to the store.
// @Summary Apply Warehouse Bulk Update
// @Description Process a warehouse push of deleted, not-for-sale, out-of-stock and stock update sub-datasets. Each sub-dataset reports its own outcome; inspect them individually.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body Payload true "Sub-datasets keyed by name"
// @Success 200 {object} BulkUpdateResult "Per-dataset outcomes"
// @Failure 400 {object} map[string]string "Bad Request"
// @Security ApiKeyAuth
// @Router /api/bulk_update [post]
func (h *Handler) HandleBulkUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Incoming request to update store contents",
		zap.String("ip", c.IP()),
		zap.String("user_agent", string(c.Request().Header.UserAgent())))

	var payload Payload
	if err := c.BodyParser(&payload); err != nil {
		l.Warn("Malformed bulk update payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed payload",
		})
	}

	result := h.service.BulkUpdate(c.Context(), payload)
	return c.JSON(result)
}

// HandlePurchaseExport returns purchases made since the previous sync.
// @Summary Export Pending Purchases
// @Description Return all purchases flagged for synchronization and clear the flag for the returned rows.
// @Tags sync
// @Produce json
// @Success 200 {array} PurchaseRecord "Pending purchases"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /api/purchases [get]
func (h *Handler) HandlePurchaseExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Purchase data requested")

	records, err := h.service.PurchaseExport(c.Context())
	if err != nil {
		l.Error("Purchase export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(records)
}

// HandleResetStore wipes all sales items and purchase history.
// @Summary Reset Store Contents
// @Description Delete every sales item and purchase record. Intended for use before a full warehouse re-upload.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{} "Reset confirmation"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Security ApiKeyAuth
// @Router /api/items/delete_all [post]
func (h *Handler) HandleResetStore(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Incoming request to delete store contents",
		zap.String("ip", c.IP()),
		zap.String("user_agent", string(c.Request().Header.UserAgent())))

	if err := h.service.ResetStore(c.Context()); err != nil {
		l.Error("Store reset failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "All stock items and purchases cleared",
	})
}

// HandleHistory lists recent sync sessions.
// @Summary List Sync Sessions
// @Description Return the most recent synchronization sessions, newest first.
// @Tags sync
// @Produce json
// @Param limit query int false "Maximum number of sessions" default(50)
// @Success 200 {array} SyncHistory "Sessions"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	sessions, err := h.service.History(c.Context(), limit)
	if err != nil {
		l.Error("Sync history lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(sessions)
}
