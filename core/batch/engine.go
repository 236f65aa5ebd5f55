package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeleteItems removes every entity of the collection whose targetKey column
// matches the incomingKey value of an incoming record.
//
// A record without the incomingKey field is counted as erroneous and skipped;
// a key value with no matching entity is counted as not-found. Neither stops
// the batch. The whole batch runs inside one transaction: a store failure
// rolls everything back, so a Failure outcome always reports zero deletions
// together with the erroneous/not-found tallies accumulated before the abort.
func DeleteItems[T any](ctx context.Context, db *gorm.DB, coll *Collection[T], targetKey string, incoming []Record, incomingKey string, logger *zap.Logger) *Outcome {
	outcome := NewOutcome()
	var counts Counts

	if !coll.HasColumn(targetKey) {
		message := fmt.Sprintf("'%s' is not a valid column in %s", targetKey, coll.Table())
		logger.Error("Delete batch rejected", zap.String("table", coll.Table()), zap.String("key", targetKey))
		outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
		return outcome
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		outcome.Finish(StatusFailure, fmt.Sprintf("failed to open transaction: %v", tx.Error), fiber.StatusInternalServerError, counts)
		return outcome
	}

	// Column name is validated against the declared schema above, so it is
	// safe to interpolate into the condition.
	condition := fmt.Sprintf("`%s` = ?", targetKey)

	for _, record := range incoming {
		keyValue, ok := record[incomingKey]
		if !ok {
			logger.Error("Record missing key field", zap.String("key", incomingKey), zap.Any("record", record))
			counts.Erroneous++
			continue
		}

		var entity T
		result := tx.Where(condition, keyValue).First(&entity)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// Routine data skew: the remote's view may be stale, or a
			// previous sync already removed the item.
			counts.NotFound++
			continue
		}
		if result.Error != nil {
			tx.Rollback()
			message := fmt.Sprintf("error while looking up item %v: %v", keyValue, result.Error)
			logger.Error("Delete batch aborted", zap.Error(result.Error))
			counts.Deleted = 0 // rollback voids every deletion
			outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
			return outcome
		}

		if err := tx.Delete(&entity).Error; err != nil {
			tx.Rollback()
			message := fmt.Sprintf("error while deleting item %v: %v", keyValue, err)
			logger.Error("Delete batch aborted", zap.Error(err))
			counts.Deleted = 0
			outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
			return outcome
		}
		counts.Deleted++
	}

	if err := tx.Commit().Error; err != nil {
		message := fmt.Sprintf("error committing delete batch: %v", err)
		logger.Error("Delete batch commit failed", zap.Error(err))
		counts.Deleted = 0
		outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
		return outcome
	}

	outcome.Finish(StatusSuccess, "Operation successful.", fiber.StatusOK, counts)
	logger.Info("Deletion complete",
		zap.String("table", coll.Table()),
		zap.Int("deleted", counts.Deleted),
		zap.Int("not_found", counts.NotFound),
		zap.Int("erroneous", counts.Erroneous))
	return outcome
}

// UpdateItems upserts incoming records into the collection. Existence is
// determined solely by equality on the targetKey column; found entities are
// updated, absent ones are created. Every mapped field is overwritten from
// the record; unmapped columns keep their stored values. When timestampColumn
// names a declared column it is stamped with the current UTC time.
//
// Records missing any mapping source field are counted as erroneous and
// skipped. The batch commits once at the end; a store failure rolls the whole
// batch back, so a Failure outcome reports zero updates and zero adds while
// preserving the erroneous tally. Duplicate keys within one batch resolve
// last-write-wins.
func UpdateItems[T any](ctx context.Context, db *gorm.DB, coll *Collection[T], targetKey string, incoming []Record, incomingKey string, mapping FieldMapping, timestampColumn string, logger *zap.Logger) *Outcome {
	outcome := NewOutcome()
	var counts Counts

	for source, column := range mapping {
		if !coll.HasColumn(column) || !coll.CanSet(column) {
			message := fmt.Sprintf("field mapping values do not match columns in %s", coll.Table())
			logger.Error("Update batch rejected",
				zap.String("table", coll.Table()),
				zap.String("source", source),
				zap.String("column", column))
			outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
			return outcome
		}
	}
	if !coll.HasColumn(targetKey) {
		message := fmt.Sprintf("'%s' is not a valid column in %s", targetKey, coll.Table())
		logger.Error("Update batch rejected", zap.String("table", coll.Table()), zap.String("key", targetKey))
		outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
		return outcome
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		outcome.Finish(StatusFailure, fmt.Sprintf("failed to open transaction: %v", tx.Error), fiber.StatusInternalServerError, counts)
		return outcome
	}

	condition := fmt.Sprintf("`%s` = ?", targetKey)

	for _, record := range incoming {
		if !hasAllSources(record, mapping, incomingKey) {
			logger.Error("Record missing mapped field(s)", zap.Any("record", record))
			counts.Erroneous++
			continue
		}

		keyValue := record[incomingKey]

		var entity T
		isNew := false
		result := tx.Where(condition, keyValue).First(&entity)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			isNew = true
		} else if result.Error != nil {
			tx.Rollback()
			message := fmt.Sprintf("error processing batch update: %v", result.Error)
			logger.Error("Update batch aborted", zap.Error(result.Error))
			counts.Updated, counts.Added = 0, 0
			outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
			return outcome
		}

		for source, column := range mapping {
			coll.Set(&entity, column, record[source])
		}
		if timestampColumn != "" && coll.HasColumn(timestampColumn) {
			coll.Set(&entity, timestampColumn, time.Now().UTC())
		}

		if err := tx.Save(&entity).Error; err != nil {
			tx.Rollback()
			message := fmt.Sprintf("error processing batch update: %v", err)
			logger.Error("Update batch aborted", zap.Error(err))
			counts.Updated, counts.Added = 0, 0
			outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
			return outcome
		}

		if isNew {
			counts.Added++
		} else {
			counts.Updated++
		}
	}

	if err := tx.Commit().Error; err != nil {
		message := fmt.Sprintf("error committing update batch: %v", err)
		logger.Error("Update batch commit failed", zap.Error(err))
		counts.Updated, counts.Added = 0, 0
		outcome.Finish(StatusFailure, message, fiber.StatusInternalServerError, counts)
		return outcome
	}

	outcome.Finish(StatusSuccess, "Operation successful.", fiber.StatusOK, counts)
	logger.Info("Update complete",
		zap.String("table", coll.Table()),
		zap.Int("updated", counts.Updated),
		zap.Int("added", counts.Added),
		zap.Int("erroneous", counts.Erroneous))
	return outcome
}

// hasAllSources checks that the record carries the incoming key and every
// mapping source field.
func hasAllSources(record Record, mapping FieldMapping, incomingKey string) bool {
	if _, ok := record[incomingKey]; !ok {
		return false
	}
	for source := range mapping {
		if _, ok := record[source]; !ok {
			return false
		}
	}
	return true
}
