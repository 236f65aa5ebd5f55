package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/core/batch"
	"storefront/core/storage"
	"storefront/feature/catalog"
	"storefront/feature/catalog/models"
)

// Sub-dataset names in the inbound warehouse payload. Each name determines
// how the records inside are applied to the store.
const (
	DatasetDeleted      = "deleted"
	DatasetNotForSale   = "not_for_sale"
	DatasetOutOfStock   = "out_of_stock"
	DatasetStockUpdates = "stock_updates"
)

// stockUpdateMapping translates warehouse update records into sales item
// columns. The vendor name arrives under a dotted source key.
func stockUpdateMapping() batch.FieldMapping {
	return batch.FieldMapping{
		"code":           "code",
		"name":           "name",
		"description":    "description",
		"vendor.name":    "vendor_name",
		"price_per_unit": "price_per_unit",
		"units_in_stock": "units_in_stock",
	}
}

// Payload is the parsed inbound sync push. A missing key means the
// warehouse did not deliver that sub-dataset at all, which is logged
// differently from a delivered-but-empty array.
type Payload map[string][]batch.Record

// BulkUpdateResult carries one outcome per sub-dataset. Sub-datasets that
// never ran keep their NotPerformed zero value.
type BulkUpdateResult struct {
	Deleted      *batch.Outcome `json:"deleted"`
	NotForSale   *batch.Outcome `json:"not_for_sale"`
	OutOfStock   *batch.Outcome `json:"out_of_stock"`
	StockUpdates *batch.Outcome `json:"stock_updates"`
}

// PurchaseRecord is one exported purchase row, shaped for the warehouse.
type PurchaseRecord struct {
	PurchaseCode string    `json:"purchase_code"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	VendorName   string    `json:"vendor_name"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalPrice   float64   `json:"total_price"`
	PurchaseTime time.Time `json:"purchase_time"`
}

// Service orchestrates warehouse synchronization sessions against the
// sales item store and records every session in the sync history.
type Service struct {
	db            *gorm.DB
	items         *batch.Collection[models.SalesItem]
	store         storage.Client
	bucket        string
	picturePrefix string
	remoteName    string
	logger        *zap.Logger
}

// NewService builds a sync service. store may be nil when object storage
// is disabled; the reset operation then skips the picture purge.
func NewService(db *gorm.DB, store storage.Client, bucket, picturePrefix, remoteName string, logger *zap.Logger) (*Service, error) {
	items, err := catalog.NewSalesItemCollection()
	if err != nil {
		return nil, fmt.Errorf("failed to build sales item collection: %w", err)
	}
	return &Service{
		db:            db,
		items:         items,
		store:         store,
		bucket:        bucket,
		picturePrefix: picturePrefix,
		remoteName:    remoteName,
		logger:        logger,
	}, nil
}

// BulkUpdate applies one inbound warehouse push. The three delete-style
// sub-datasets remove items by code; the stock update sub-dataset upserts
// item attributes. Sub-dataset failures are isolated: one batch rolling
// back does not block the others, and the caller must inspect each outcome
// individually. One history row is written per invocation.
func (s *Service) BulkUpdate(ctx context.Context, payload Payload) *BulkUpdateResult {
	start := time.Now().UTC()

	result := &BulkUpdateResult{
		Deleted:      batch.NewOutcome(),
		NotForSale:   batch.NewOutcome(),
		OutOfStock:   batch.NewOutcome(),
		StockUpdates: batch.NewOutcome(),
	}

	result.Deleted = s.runDeletions(ctx, payload, DatasetDeleted, result.Deleted)
	result.NotForSale = s.runDeletions(ctx, payload, DatasetNotForSale, result.NotForSale)
	result.OutOfStock = s.runDeletions(ctx, payload, DatasetOutOfStock, result.OutOfStock)

	if records, present := payload[DatasetStockUpdates]; !present {
		s.logger.Warn("Stock update dataset missing from the incoming batch")
	} else if len(records) == 0 {
		s.logger.Info("Stock update dataset empty in the incoming batch")
	} else {
		result.StockUpdates = batch.UpdateItems(ctx, s.db, s.items, "code", records, "code", stockUpdateMapping(), "last_updated", s.logger)
	}

	received := 0
	for _, outcome := range []*batch.Outcome{result.Deleted, result.NotForSale, result.OutOfStock, result.StockUpdates} {
		if outcome.Success() {
			received += outcome.UpdatedCount + outcome.AddedCount
		}
	}

	s.recordSession(ctx, SyncHistory{
		RemoteName:      s.remoteName,
		TimestampStart:  start,
		TimestampEnd:    time.Now().UTC(),
		ConnectionType:  ConnectionSync,
		UpdatesReceived: received,
	})
	return result
}

// runDeletions routes one delete-style sub-dataset through the batch
// engine, keeping the prior outcome when the sub-dataset is absent or
// empty.
func (s *Service) runDeletions(ctx context.Context, payload Payload, name string, prior *batch.Outcome) *batch.Outcome {
	records, present := payload[name]
	if !present {
		s.logger.Warn("Sub-dataset missing from the incoming batch", zap.String("dataset", name))
		return prior
	}
	if len(records) == 0 {
		s.logger.Info("Sub-dataset empty in the incoming batch", zap.String("dataset", name))
		return prior
	}
	return batch.DeleteItems(ctx, s.db, s.items, "code", records, "code", s.logger)
}

// PurchaseExport returns every purchase still flagged for synchronization
// and clears the flag for exactly the rows returned, in one transaction so
// a purchase landing mid-export is never marked synced without being sent.
func (s *Service) PurchaseExport(ctx context.Context) ([]PurchaseRecord, error) {
	start := time.Now().UTC()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin purchase export: %w", tx.Error)
	}

	var purchases []models.Purchase
	if err := tx.Where("requires_sync = ?", true).Find(&purchases).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to load pending purchases: %w", err)
	}

	if len(purchases) > 0 {
		ids := make([]int, len(purchases))
		for i, p := range purchases {
			ids[i] = p.ID
		}
		if err := tx.Model(&models.Purchase{}).Where("id IN ?", ids).Update("requires_sync", false).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to clear sync flags: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit purchase export: %w", err)
	}

	records := make([]PurchaseRecord, len(purchases))
	for i, p := range purchases {
		records[i] = PurchaseRecord{
			PurchaseCode: p.PurchaseCode,
			Code:         p.SalesItemCode,
			Name:         p.SalesItemName,
			VendorName:   p.VendorName,
			Quantity:     p.Quantity,
			PricePerUnit: p.ItemBasePrice,
			TotalPrice:   p.TotalPrice,
			PurchaseTime: p.PurchaseTime,
		}
	}

	s.logger.Info("Purchase data exported", zap.Int("purchases", len(records)))
	s.recordSession(ctx, SyncHistory{
		RemoteName:     s.remoteName,
		TimestampStart: start,
		TimestampEnd:   time.Now().UTC(),
		ConnectionType: ConnectionSync,
		UpdatesSent:    len(records),
	})
	return records, nil
}

// ResetStore deletes every sales item and every purchase in a single
// transaction, then purges any stored item pictures. The purge is best
// effort: the store wipe is already committed, so picture leftovers are
// logged rather than failing the reset.
func (s *Service) ResetStore(ctx context.Context) error {
	start := time.Now().UTC()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin store reset: %w", tx.Error)
	}
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SalesItem{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete sales items: %w", err)
	}
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Purchase{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete purchase history: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit store reset: %w", err)
	}
	s.logger.Info("Sales items and purchase history removed from the store")

	s.purgePictures(ctx)

	s.recordSession(ctx, SyncHistory{
		RemoteName:     s.remoteName,
		TimestampStart: start,
		TimestampEnd:   time.Now().UTC(),
		ConnectionType: ConnectionReset,
	})
	return nil
}

// purgePictures removes every object under the picture prefix from the
// item picture bucket. No-op when object storage is disabled.
func (s *Service) purgePictures(ctx context.Context) {
	if s.store == nil {
		return
	}
	objects := s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.picturePrefix,
		Recursive: true,
	})
	for removeErr := range s.store.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		s.logger.Warn("Failed to remove item picture",
			zap.String("object", removeErr.ObjectName),
			zap.Error(removeErr.Err))
	}
}

// History returns the most recent sync sessions, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]SyncHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	var sessions []SyncHistory
	if err := s.db.WithContext(ctx).Order("timestamp_start DESC").Limit(limit).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to load sync history: %w", err)
	}
	return sessions, nil
}

// recordSession appends one history row. History is observability, not
// business state, so persistence failures are logged and swallowed.
func (s *Service) recordSession(ctx context.Context, session SyncHistory) {
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		s.logger.Error("Failed to record sync session", zap.Error(err))
		return
	}
	s.logger.Info("Sync session recorded",
		zap.String("connection_type", session.ConnectionType.String()),
		zap.Int("updates_received", session.UpdatesReceived),
		zap.Int("updates_sent", session.UpdatesSent))
}
