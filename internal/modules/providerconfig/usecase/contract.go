package usecase

import (
	"context"

	"bwh/core-api/pkg/webhook/signature"
)

type ProviderConfigRequest struct {
	ID              string              `json:"id" validate:"omitempty,uuid" label:"ID"`
	Name            string              `json:"name" validate:"required,min=1,max=50" label:"Name"`
	Type            string              `json:"type" validate:"required" label:"Type"`
	Secret          string              `json:"secret" validate:"omitempty" label:"Secret"`
	TwilioURL       string              `json:"twilio_url" validate:"omitempty,url" label:"Twilio URL"`
	SignatureHeader string              `json:"signature_header" validate:"omitempty,max=100" label:"Signature header"`
	Algorithm       signature.Algorithm `json:"algorithm" validate:"omitempty" label:"Algorithm"`
	Enabled         bool                `json:"enabled"`
}

type ProviderConfigResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Type            string              `json:"type"`
	TwilioURL       string              `json:"twilio_url,omitempty"`
	SignatureHeader string              `json:"signature_header,omitempty"`
	Algorithm       signature.Algorithm `json:"algorithm,omitempty"`
	Enabled         bool                `json:"enabled"`
}

type ReadProviderConfigUseCase interface {
	Execute(ctx context.Context) ([]ProviderConfigResponse, error)
}

type ReadProviderConfigDetailUseCase interface {
	Execute(ctx context.Context, id string) (*ProviderConfigResponse, error)
}

type CreateProviderConfigUseCase interface {
	Execute(ctx context.Context, req *ProviderConfigRequest) (*ProviderConfigResponse, error)
}
