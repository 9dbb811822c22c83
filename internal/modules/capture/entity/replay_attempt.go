package entity

// ReplayAttempt records one dispatch of a capture against a target
// URL (spec §4.9), child to CaptureIndex the same way BookingDetail
// was child to Booking.
type ReplayAttempt struct {
	ID             string `gorm:"column:id;type:uuid;primaryKey"`
	CaptureIndexID string `gorm:"column:capture_index_id;type:uuid;not null"`
	TargetURL      string `gorm:"column:target_url;type:text;not null"`
	StatusCode     int32  `gorm:"column:status_code;type:int;not null;default:0"`
	Succeeded      bool   `gorm:"column:succeeded;type:boolean;not null;default:false"`
	DurationMs     int64  `gorm:"column:duration_ms;type:bigint;not null;default:0"`
	CreatedAt      int64  `gorm:"column:created_at;type:bigint;not null;autoCreateTime:milli"`
}

func (ReplayAttempt) TableName() string {
	return "replay_attempts"
}

// [ENTITY STANDARD: DOMAIN VALIDATION]
func (e *ReplayAttempt) Validate() error {
	return nil
}
