package repository

import (
	"context"

	"bwh/core-api/internal/modules/capture/entity"
)

// -------- Repository Command --------

type CaptureIndexCommandRepository interface {
	Create(ctx context.Context, index *entity.CaptureIndex) error
	Update(ctx context.Context, index *entity.CaptureIndex) error
	Delete(ctx context.Context, index *entity.CaptureIndex) error
}

// -------- Repository Query --------

type CaptureIndexQueryRepository interface {
	ExistsByCaptureID(ctx context.Context, captureID string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.CaptureIndex, error)
	FindByCaptureID(ctx context.Context, captureID string) (*entity.CaptureIndex, error)
}
