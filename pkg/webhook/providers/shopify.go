package providers

import (
	"encoding/base64"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Shopify verifies `x-shopify-hmac-sha256: <base64>` over the raw body.
type Shopify struct {
	webhook.BaseProvider
	SecretValue string
}

func NewShopify(secret string) *Shopify { return &Shopify{SecretValue: secret} }

func (s *Shopify) Name() string                             { return "shopify" }
func (s *Shopify) Secret() string                            { return s.SecretValue }
func (s *Shopify) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (s *Shopify) GetEventType(headers webhook.Headers, _ any) (string, bool) {
	return headers.Get("x-shopify-topic")
}

func (s *Shopify) GetDeliveryID(headers webhook.Headers) (string, bool) {
	return headers.Get("x-shopify-webhook-id")
}

func (s *Shopify) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	header, ok := headers.Get("x-shopify-hmac-sha256")
	if !ok {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}
	computed, err := signature.Compute(signature.SHA256, secret, signature.BaseDirect(rawBody))
	if err != nil {
		return false
	}
	return signature.ConstantTimeEqual(expected, computed)
}

func (s *Shopify) GetReplayContext(headers webhook.Headers, _ any) (webhook.ReplayContext, bool) {
	id, ok := headers.Get("x-shopify-webhook-id")
	if !ok || id == "" {
		return webhook.ReplayContext{}, false
	}
	return webhook.ReplayContext{Provider: s.Name(), ReplayKey: id, DeliveryID: id}, true
}
