package token

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service   *Service
	validator *Validator
	handler   *Handler
}

// NewFeature creates the token feature. adminGuard protects the
// administrative routes.
func NewFeature(db *gorm.DB, appID, secret string, maxValidityDays int, logger *zap.Logger, adminGuard fiber.Handler) *Feature {
	issuer := NewIssuer(db, appID, secret, maxValidityDays, logger)
	svc := NewService(db, issuer, logger)
	validator := NewValidator(db, appID, secret, logger)
	h := NewHandler(svc, adminGuard)
	return &Feature{service: svc, validator: validator, handler: h}
}

// Validator returns the credential validator for the sync API guard.
func (f *Feature) Validator() *Validator {
	return f.validator
}

// Service returns the administration service (used by the CLI commands).
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "token"
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
