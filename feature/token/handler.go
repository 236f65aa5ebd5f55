package token

import (
	"errors"
	"time"

	"storefront/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the administrative credential surface.
type Handler struct {
	service *Service
	guard   fiber.Handler
}

// NewHandler creates a new HTTP handler. guard protects the admin routes
// (typically the API key middleware).
func NewHandler(service *Service, guard fiber.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

// RegisterRoutes registers the token administration routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tokens", h.guard)
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleIssue)
	group.Post("/:id/revoke", h.HandleToggleRevoked)
	group.Delete("/:id", h.HandleDelete)
}

// issueRequest is the body of POST /tokens.
type issueRequest struct {
	ConnectionName string    `json:"connection_name"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// tokenView is the transport shape of one credential.
type tokenView struct {
	ID             int        `json:"id"`
	ConnectionName string     `json:"connection_name"`
	Token          string     `json:"token"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	Status         string     `json:"status"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"`
}

func toView(t *APIToken) tokenView {
	return tokenView{
		ID:             t.ID,
		ConnectionName: t.ConnectionName,
		Token:          t.Token,
		CreatedAt:      t.CreatedAt,
		ExpiresAt:      t.ExpiresAt,
		Status:         t.Status(time.Now().UTC()),
		LastUsedAt:     t.LastUsedAt,
	}
}

// HandleList lists all issued credentials.
// @Summary List API Tokens
// @Description List all issued sync credentials with their current status.
// @Tags tokens
// @Produce json
// @Success 200 {array} tokenView "Tokens"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tokens [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	tokens, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Token list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	views := make([]tokenView, 0, len(tokens))
	for i := range tokens {
		views = append(views, toView(&tokens[i]))
	}
	return c.JSON(views)
}

// HandleIssue issues a new credential.
// @Summary Issue API Token
// @Description Issue a new signed sync credential for a named connection.
// @Tags tokens
// @Accept json
// @Produce json
// @Param request body issueRequest true "Issue Request"
// @Success 201 {object} tokenView "Issued Token"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tokens [post]
func (h *Handler) HandleIssue(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	record, err := h.service.Issuer().Issue(c.Context(), req.ExpiresAt, req.ConnectionName)
	if errors.Is(err, ErrExpirationNotFuture) || errors.Is(err, ErrExpirationTooFar) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Token issuance failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toView(record))
}

// HandleToggleRevoked flips a credential between Active and Revoked.
// @Summary Toggle Token Revocation
// @Description Flip a credential between the Active and Revoked states.
// @Tags tokens
// @Produce json
// @Param id path int true "Token ID"
// @Success 200 {object} tokenView "Updated Token"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tokens/{id}/revoke [post]
func (h *Handler) HandleToggleRevoked(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid token id",
		})
	}

	record, err := h.service.ToggleRevoked(c.Context(), id)
	if errors.Is(err, ErrTokenNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "token not found",
		})
	}
	if err != nil {
		l.Error("Token toggle failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(toView(record))
}

// HandleDelete removes a credential record.
// @Summary Delete API Token
// @Description Delete a credential record entirely.
// @Tags tokens
// @Produce json
// @Param id path int true "Token ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tokens/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid token id",
		})
	}

	err = h.service.Delete(c.Context(), id)
	if errors.Is(err, ErrTokenNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "token not found",
		})
	}
	if err != nil {
		l.Error("Token delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
