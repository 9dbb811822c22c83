package providers

import (
	"encoding/base64"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// SendGrid verifies the event webhook signature header (base64) over
// "timestamp+body".
type SendGrid struct {
	webhook.BaseProvider
	SecretValue string
}

func NewSendGrid(secret string) *SendGrid { return &SendGrid{SecretValue: secret} }

func (s *SendGrid) Name() string                             { return "sendgrid" }
func (s *SendGrid) Secret() string                            { return s.SecretValue }
func (s *SendGrid) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (s *SendGrid) GetEventType(_ webhook.Headers, parsedBody any) (string, bool) {
	events, ok := parsedBody.([]any)
	if !ok || len(events) == 0 {
		return "", false
	}
	first, ok := events[0].(map[string]any)
	if !ok {
		return "", false
	}
	t, ok := first["event"].(string)
	return t, ok && t != ""
}

func (s *SendGrid) GetDeliveryID(webhook.Headers) (string, bool) { return "", false }

func (s *SendGrid) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	header, ok := headers.Get("x-twilio-email-event-webhook-signature")
	if !ok {
		return false
	}
	ts, ok := headers.Get("x-twilio-email-event-webhook-timestamp")
	if !ok {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}
	computed, err := signature.Compute(signature.SHA256, secret, signature.BaseConcat(ts, rawBody))
	if err != nil {
		return false
	}
	return signature.ConstantTimeEqual(expected, computed)
}
