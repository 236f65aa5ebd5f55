package catalog

import (
	"context"
	"errors"
	"fmt"

	"storefront/core/storage"
	"storefront/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrItemNotFound is returned when no sales item matches the given code.
var ErrItemNotFound = errors.New("sales item not found")

// ItemDetail is a sales item together with the integrity status of its
// picture object in storage.
type ItemDetail struct {
	Item           models.SalesItem `json:"item"`
	PicturePresent bool             `json:"picture_present"`
	PictureChecked bool             `json:"picture_checked"`
}

// Service handles catalog lookups.
type Service struct {
	db            *gorm.DB
	client        storage.Client
	bucket        string
	picturePrefix string
	logger        *zap.Logger
}

// NewService creates a new catalog service. client may be nil when object
// storage integration is disabled.
func NewService(db *gorm.DB, client storage.Client, bucket, picturePrefix string, logger *zap.Logger) *Service {
	return &Service{
		db:            db,
		client:        client,
		bucket:        bucket,
		picturePrefix: picturePrefix,
		logger:        logger,
	}
}

// GetItemDetail returns the sales item with the given code, plus whether its
// picture object actually exists in the bucket.
func (s *Service) GetItemDetail(ctx context.Context, code string) (*ItemDetail, error) {
	var item models.SalesItem
	result := s.db.WithContext(ctx).Where("`code` = ?", code).First(&item)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load item %s: %w", code, result.Error)
	}

	detail := &ItemDetail{Item: item}
	if s.client == nil || item.Picture == "" {
		return detail, nil
	}

	detail.PictureChecked = true
	objectName := s.picturePrefix + item.Picture
	if _, err := s.client.StatObject(ctx, s.bucket, objectName, minio.StatObjectOptions{}); err != nil {
		s.logger.Info("Item picture missing from storage",
			zap.String("code", code),
			zap.String("object", objectName))
		return detail, nil
	}
	detail.PicturePresent = true
	return detail, nil
}
