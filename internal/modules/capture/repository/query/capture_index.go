/*
|------------------------------------------------------------------------------------
| REPOSITORY ARCHITECTURAL STANDARDS & QUERY OPTIMIZATION MANIFESTO
|------------------------------------------------------------------------------------
|
| The Query Repository is dedicated to data retrieval. It follows the R-side of
| CQRS, focusing on performance, filtering, and non-mutating operations.
|
| [1. SELECTIVE RETRIEVAL (NO SELECT *)]
| - Always specify required fields in .Select(). Avoid 'SELECT *' to minimize
|   database I/O and prevent sensitive data leakage.
|
| [2. NULLABLE VS ERROR]
| - If a record is NOT FOUND, return (nil, nil) instead of an error for Query
|   methods (unless the business logic dictates that the absence is an anomaly).
| - Database connection issues or syntax errors MUST still be mapped and returned.
|
| [3. READ-ONLY CONTEXT]
| - Ensure .WithContext(ctx) is called to respect timeouts, cancellations,
|   and tracing propagation.
|
| [4. PRELOAD DISCIPLINE]
| - Only Preload relationships that are strictly necessary for the requested
|   operation to avoid N+1 query problems or heavy payload bloat.
|
|------------------------------------------------------------------------------------
*/
package query

import (
	"context"
	"errors"

	database "bwh/core-api/internal/infrastructure/db"
	"bwh/core-api/internal/modules/capture/entity"
	"bwh/core-api/internal/modules/capture/repository"

	"gorm.io/gorm"
)

// captureIndexRepository implements repository.CaptureIndexQueryRepository.
// It focuses on efficient data fetching and complex filtering logic.
type captureIndexRepository struct {
	DB database.Database
}

// [INTERFACE COMPLIANCE CHECK]
var _ repository.CaptureIndexQueryRepository = (*captureIndexRepository)(nil)

// NewCaptureIndexRepository creates a new instance for reading CaptureIndex data.
func NewCaptureIndexRepository(db database.Database) repository.CaptureIndexQueryRepository {
	return &captureIndexRepository{
		DB: db,
	}
}

func (r *captureIndexRepository) ExistsByCaptureID(ctx context.Context, captureID string) (bool, error) {
	if captureID == "" {
		return false, nil
	}
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&entity.CaptureIndex{}).
		Where("capture_id = ?", captureID).
		Limit(1).
		Count(&count).
		Error; err != nil {
		return false, database.MapDBError(err)
	}
	return count > 0, nil
}

func (r *captureIndexRepository) FindByCaptureID(ctx context.Context, captureID string) (*entity.CaptureIndex, error) {
	if captureID == "" {
		return nil, nil
	}
	var index entity.CaptureIndex
	err := r.DB.WithContext(ctx).
		Model(&entity.CaptureIndex{}).
		Select(
			"id",
			"capture_id",
			"provider",
			"event_type",
			"delivery_id",
			"method",
			"path",
			"size_bytes",
			"replay_status",
			"received_at",
			"created_at",
			"updated_at",
		).
		Where("capture_id = ?", captureID).
		First(&index).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, database.MapDBError(err)
	}

	return &index, nil
}

func (r *captureIndexRepository) FindByID(ctx context.Context, id string) (*entity.CaptureIndex, error) {
	if id == "" {
		return nil, nil
	}
	var index entity.CaptureIndex
	err := r.DB.WithContext(ctx).
		Model(&entity.CaptureIndex{}).
		Select(
			"id",
			"capture_id",
			"provider",
			"event_type",
			"delivery_id",
			"method",
			"path",
			"size_bytes",
			"replay_status",
			"received_at",
			"created_at",
			"updated_at",
		).
		Where("id = ?", id).
		// The relation field is "ReplayAttempts", matching the entity's
		// struct tag: unlike the booking module this once diverged from,
		// the preload name here tracks the Go field, not the table.
		Preload("ReplayAttempts", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "capture_index_id", "target_url", "status_code", "succeeded", "duration_ms", "created_at")
		}).
		First(&index).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, database.MapDBError(err)
	}

	return &index, nil
}
