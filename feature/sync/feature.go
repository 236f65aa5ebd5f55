package sync

import (
	"storefront/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the sync feature. store may be nil when object
// storage is disabled.
func NewFeature(db *gorm.DB, store storage.Client, bucket, picturePrefix, remoteName string, logger *zap.Logger, tokenGuard, adminGuard fiber.Handler) (*Feature, error) {
	svc, err := NewService(db, store, bucket, picturePrefix, remoteName, logger)
	if err != nil {
		return nil, err
	}
	h := NewHandler(svc, tokenGuard, adminGuard)
	return &Feature{service: svc, handler: h}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
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

// Service exposes the sync service for command-line use.
func (f *Feature) Service() *Service {
	return f.service
}
