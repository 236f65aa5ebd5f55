package token

import (
	"strings"

	"storefront/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireValid returns a middleware guarding the sync API with bearer
// credentials. Absent or invalid tokens are rejected before any business
// logic runs; the rejection reason is logged by the validator.
func RequireValid(v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString := ""
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = parts[1]
		}
		if tokenString == "" {
			logger.WithRayID(v.logger, c).Info("Sync request without credential rejected",
				zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing token",
			})
		}

		if !v.Validate(c.Context(), tokenString) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		return c.Next()
	}
}
