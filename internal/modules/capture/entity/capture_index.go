package entity

import (
	"bwh/core-api/internal/pkg/apperror"
)

// [ENTITY STANDARD: DOMAIN SPECIFIC ERROR]
const (
	CodeCaptureIndexNotFound       = "CAPTURE_INDEX_NOT_FOUND"
	CodeCaptureIndexAlreadyIndexed = "CAPTURE_INDEX_ALREADY_INDEXED"
	CodeCaptureIndexPathRequired   = "CAPTURE_INDEX_PATH_REQUIRED"
)

var (
	ErrCaptureIndexNotFound = apperror.NewPersistance(
		CodeCaptureIndexNotFound,
		"capture index record not found",
	)

	ErrCaptureIndexAlreadyIndexed = apperror.NewPersistance(
		CodeCaptureIndexAlreadyIndexed,
		"capture has already been indexed",
	)

	ErrCaptureIndexPathRequired = apperror.NewPersistance(
		CodeCaptureIndexPathRequired,
		"capture index must have a request path",
	)
)

// ReplayStatus mirrors the lifecycle of a capture's replay attempts.
type ReplayStatus string

const (
	ReplayStatusNone      ReplayStatus = "NONE"
	ReplayStatusReplaying ReplayStatus = "REPLAYING"
	ReplayStatusSucceeded ReplayStatus = "SUCCEEDED"
	ReplayStatusFailed    ReplayStatus = "FAILED"
)

// CaptureIndex is the Postgres-backed secondary index over captures
// written to the filesystem store by pkg/capture.FSStore: it exists so
// the management UI can filter/search by provider, event type, or
// replay outcome without scanning every JSON file on disk.
type CaptureIndex struct {
	ID           string       `gorm:"column:id;type:uuid;primaryKey"`
	CaptureID    string       `gorm:"column:capture_id;type:varchar(100);not null;unique"`
	Provider     string       `gorm:"column:provider;type:varchar(50);not null"`
	EventType    string       `gorm:"column:event_type;type:varchar(100)"`
	DeliveryID   string       `gorm:"column:delivery_id;type:varchar(255)"`
	Method       string       `gorm:"column:method;type:varchar(10);not null"`
	Path         string       `gorm:"column:path;type:varchar(500);not null"`
	SizeBytes    int64        `gorm:"column:size_bytes;type:bigint;not null;default:0"`
	ReplayStatus ReplayStatus `gorm:"column:replay_status;type:varchar(20);not null;default:'NONE'"`
	ReceivedAt   int64        `gorm:"column:received_at;type:bigint;not null"`
	CreatedAt    int64        `gorm:"column:created_at;type:bigint;not null;autoCreateTime:milli"`
	UpdatedAt    *int64       `gorm:"column:updated_at;type:bigint;autoUpdateTime:false"`
	DeletedAt    *int64       `gorm:"column:deleted_at;autoUpdateTime:false"`

	ReplayAttempts []ReplayAttempt `gorm:"foreignKey:CaptureIndexID;references:ID"`
}

func (CaptureIndex) TableName() string {
	return "capture_indices"
}

// [ENTITY STANDARD: DOMAIN VALIDATION]
func (e *CaptureIndex) Validate() error {
	// A row with no path is meaningless for search/filter purposes, so we
	// reject it here rather than at the database constraint level.
	if e.Path == "" {
		return ErrCaptureIndexPathRequired
	}
	if e.ReplayStatus == "" {
		e.ReplayStatus = ReplayStatusNone
	}
	return nil
}
