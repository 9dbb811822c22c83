package providers

import (
	"encoding/base64"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Twilio verifies `x-twilio-signature: <base64>` (SHA-1) over
// "url+body". URL must be the exact request URL Twilio signed, so it's
// configured per-provider instance rather than read from headers.
type Twilio struct {
	webhook.BaseProvider
	SecretValue string
	URL         string
}

func NewTwilio(secret, url string) *Twilio { return &Twilio{SecretValue: secret, URL: url} }

func (t *Twilio) Name() string                             { return "twilio" }
func (t *Twilio) Secret() string                            { return t.SecretValue }
func (t *Twilio) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (t *Twilio) GetEventType(webhook.Headers, any) (string, bool) { return "", false }

func (t *Twilio) GetDeliveryID(headers webhook.Headers) (string, bool) {
	return headers.Get("i-twilio-idempotency-token")
}

func (t *Twilio) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	header, ok := headers.Get("x-twilio-signature")
	if !ok {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}
	computed, err := signature.Compute(signature.SHA1, secret, signature.BaseURLBody(t.URL, rawBody))
	if err != nil {
		return false
	}
	return signature.ConstantTimeEqual(expected, computed)
}

func (t *Twilio) GetReplayContext(headers webhook.Headers, _ any) (webhook.ReplayContext, bool) {
	id, ok := t.GetDeliveryID(headers)
	if !ok || id == "" {
		return webhook.ReplayContext{}, false
	}
	return webhook.ReplayContext{Provider: t.Name(), ReplayKey: id, DeliveryID: id}, true
}
