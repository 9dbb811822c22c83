package providers

import (
	"encoding/hex"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Slack verifies `x-slack-signature: v0=<hex>` over "v0:timestamp:body",
// and reads the event type from the body's `type` (unwrapping
// `event_callback` envelopes to the nested event's type).
type Slack struct {
	webhook.BaseProvider
	SecretValue string
}

func NewSlack(secret string) *Slack { return &Slack{SecretValue: secret} }

func (s *Slack) Name() string                             { return "slack" }
func (s *Slack) Secret() string                            { return s.SecretValue }
func (s *Slack) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (s *Slack) GetEventType(_ webhook.Headers, parsedBody any) (string, bool) {
	m, ok := parsedBody.(map[string]any)
	if !ok {
		return "", false
	}
	t, ok := m["type"].(string)
	if !ok || t == "" {
		return "", false
	}
	if t == "event_callback" {
		if ev, ok := m["event"].(map[string]any); ok {
			if inner, ok := ev["type"].(string); ok && inner != "" {
				return inner, true
			}
		}
	}
	return t, true
}

func (s *Slack) GetDeliveryID(headers webhook.Headers) (string, bool) {
	return headers.Get("x-slack-request-timestamp")
}

func (s *Slack) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	header, ok := headers.Get("x-slack-signature")
	if !ok {
		return false
	}
	ts, ok := headers.Get("x-slack-request-timestamp")
	if !ok {
		return false
	}
	encoded, ok := signature.StripPrefix(header, "v0=")
	if !ok {
		return false
	}
	expected, err := hex.DecodeString(encoded)
	if err != nil {
		return false
	}
	computed, err := signature.Compute(signature.SHA256, secret, signature.BaseSlackV0(ts, rawBody))
	if err != nil {
		return false
	}
	return signature.ConstantTimeEqual(expected, computed)
}
