package usecase

import (
	"context"
)

// -------- DTOs --------

// IndexCaptureRequest is fed by internal/app's store.Subscribe callback
// (BootstrapApiConfig.indexCapture) right after a request has been
// persisted to the filesystem store (spec §4.6), and by the
// POST /capture-index route: it mirrors the just-written CaptureRecord
// so the row can be searched without re-reading the JSON file.
type IndexCaptureRequest struct {
	CaptureID  string `json:"capture_id" validate:"required,min=1,max=100" label:"Capture ID"`
	Provider   string `json:"provider" validate:"required,min=1,max=50" label:"Provider"`
	EventType  string `json:"event_type" validate:"omitempty,max=100" label:"Event type"`
	DeliveryID string `json:"delivery_id" validate:"omitempty,max=255" label:"Delivery ID"`
	Method     string `json:"method" validate:"required,max=10" label:"Method"`
	Path       string `json:"path" validate:"required,max=500" label:"Path"`
	SizeBytes  int64  `json:"size_bytes" validate:"gte=0" label:"Size bytes"`
	ReceivedAt int64  `json:"received_at" validate:"required" label:"Received at"`
}

type IndexCaptureResponse struct {
	ID           string `json:"id"`
	CaptureID    string `json:"capture_id"`
	Provider     string `json:"provider"`
	EventType    string `json:"event_type"`
	DeliveryID   string `json:"delivery_id"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	SizeBytes    int64  `json:"size_bytes"`
	ReplayStatus string `json:"replay_status"`
	ReceivedAt   int64  `json:"received_at"`
}

// -------- Usecase Interfaces --------
// [CONTRACT DEFINITION]
// IndexCaptureUseCase defines the business contract for recording a
// capture into the searchable Postgres index. High-level orchestration
// is hidden behind this interface.
type IndexCaptureUseCase interface {
	// Execute processes the index request.
	// It returns an IndexCaptureResponse on success or an apperror.AppError on failure.
	Execute(ctx context.Context, req *IndexCaptureRequest) (*IndexCaptureResponse, error)
}
