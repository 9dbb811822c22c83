package providers

import (
	"strconv"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Stripe verifies the compound `stripe-signature: t=…,v1=<hex>` header
// over "timestamp.body", and reads the event type and id from the body.
type Stripe struct {
	webhook.BaseProvider
	SecretValue string
}

func NewStripe(secret string) *Stripe { return &Stripe{SecretValue: secret} }

func (s *Stripe) Name() string                             { return "stripe" }
func (s *Stripe) Secret() string                            { return s.SecretValue }
func (s *Stripe) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (s *Stripe) GetEventType(_ webhook.Headers, parsedBody any) (string, bool) {
	m, ok := parsedBody.(map[string]any)
	if !ok {
		return "", false
	}
	t, ok := m["type"].(string)
	return t, ok && t != ""
}

func (s *Stripe) GetDeliveryID(_ webhook.Headers) (string, bool) { return "", false }

func (s *Stripe) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	header, ok := headers.Get("stripe-signature")
	if !ok {
		return false
	}
	ts, sigs, ok := signature.ParseCompound(header, "v1")
	if !ok {
		return false
	}
	computed, err := signature.Hex(signature.SHA256, secret, signature.BaseTimestampDotBody(ts, rawBody))
	if err != nil {
		return false
	}
	for _, sig := range sigs {
		if signature.ConstantTimeEqualString(sig, computed) {
			return true
		}
	}
	return false
}

func (s *Stripe) GetReplayContext(headers webhook.Headers, parsedBody any) (webhook.ReplayContext, bool) {
	m, _ := parsedBody.(map[string]any)
	id, _ := m["id"].(string)
	if id == "" {
		return webhook.ReplayContext{}, false
	}
	rc := webhook.ReplayContext{Provider: s.Name(), ReplayKey: id, DeliveryID: id}
	if header, ok := headers.Get("stripe-signature"); ok {
		if ts, _, ok := signature.ParseCompound(header, "v1"); ok {
			if sec, err := strconv.ParseInt(ts, 10, 64); err == nil {
				rc.Timestamp = sec
				rc.HasTimestamp = true
			}
		}
	}
	return rc, true
}
