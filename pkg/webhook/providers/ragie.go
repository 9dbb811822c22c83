package providers

import (
	"encoding/hex"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Ragie envelopes the true payload as {type, payload, nonce}; GetPayload
// unwraps it, merging `nonce` into the returned map per provider policy
// (spec §4.2).
type Ragie struct {
	webhook.BaseProvider
	SecretValue string
}

func NewRagie(secret string) *Ragie { return &Ragie{SecretValue: secret} }

func (r *Ragie) Name() string                             { return "ragie" }
func (r *Ragie) Secret() string                            { return r.SecretValue }
func (r *Ragie) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (r *Ragie) GetEventType(_ webhook.Headers, parsedBody any) (string, bool) {
	m, ok := parsedBody.(map[string]any)
	if !ok {
		return "", false
	}
	t, ok := m["type"].(string)
	return t, ok && t != ""
}

func (r *Ragie) GetDeliveryID(webhook.Headers) (string, bool) { return "", false }

func (r *Ragie) GetPayload(parsedBody any) any {
	m, ok := parsedBody.(map[string]any)
	if !ok {
		return parsedBody
	}
	payload, ok := m["payload"]
	if !ok {
		return parsedBody
	}
	pm, ok := payload.(map[string]any)
	if !ok {
		return payload
	}
	merged := make(map[string]any, len(pm)+1)
	for k, v := range pm {
		merged[k] = v
	}
	if nonce, ok := m["nonce"]; ok {
		merged["nonce"] = nonce
	}
	return merged
}

func (r *Ragie) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	header, ok := headers.Get("x-ragie-signature")
	if !ok {
		return false
	}
	expected, err := hex.DecodeString(header)
	if err != nil {
		return false
	}
	computed, err := signature.Compute(signature.SHA256, secret, signature.BaseDirect(rawBody))
	if err != nil {
		return false
	}
	return signature.ConstantTimeEqual(expected, computed)
}
