package providers

import (
	"encoding/base64"
	"strconv"
	"strings"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Svix implements the Svix envelope shared by Svix-based providers
// (Clerk, Recall): `webhook-id`/`svix-id`, `webhook-timestamp`/
// `svix-timestamp`, `webhook-signature`/`svix-signature: v1,<base64>`
// over "id.timestamp.body". ProviderName lets one implementation serve
// every Svix-based provider under its own registered name.
type Svix struct {
	webhook.BaseProvider
	ProviderName string
	SecretValue  string
}

func NewSvix(providerName, secret string) *Svix {
	return &Svix{ProviderName: providerName, SecretValue: secret}
}

func (s *Svix) Name() string                             { return s.ProviderName }
func (s *Svix) Secret() string                            { return s.SecretValue }
func (s *Svix) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (s *Svix) GetEventType(_ webhook.Headers, parsedBody any) (string, bool) {
	m, ok := parsedBody.(map[string]any)
	if !ok {
		return "", false
	}
	if t, ok := m["type"].(string); ok && t != "" {
		return t, true
	}
	if t, ok := m["event"].(string); ok && t != "" {
		return t, true
	}
	return "", false
}

func (s *Svix) GetDeliveryID(headers webhook.Headers) (string, bool) {
	if v, ok := headers.Get("svix-id"); ok && v != "" {
		return v, true
	}
	return headers.Get("webhook-id")
}

func (s *Svix) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	id, ok := s.GetDeliveryID(headers)
	if !ok {
		return false
	}
	ts, ok := headers.Get("svix-timestamp")
	if !ok {
		ts, ok = headers.Get("webhook-timestamp")
	}
	if !ok {
		return false
	}
	sigHeader, ok := headers.Get("svix-signature")
	if !ok {
		sigHeader, ok = headers.Get("webhook-signature")
	}
	if !ok {
		return false
	}

	secretKey := secret
	if trimmed, ok := signature.StripPrefix(secretKey, "whsec_"); ok {
		if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
			secretKey = string(decoded)
		}
	}

	computed, err := signature.Compute(signature.SHA256, secretKey, signature.BaseIDTimestampBody(id, ts, rawBody))
	if err != nil {
		return false
	}
	computedB64 := base64.StdEncoding.EncodeToString(computed)

	for _, part := range strings.Fields(sigHeader) {
		candidate := part
		if _, v, ok := strings.Cut(part, ","); ok {
			candidate = v
		}
		if signature.ConstantTimeEqualString(candidate, computedB64) {
			return true
		}
	}
	return false
}

func (s *Svix) GetReplayContext(headers webhook.Headers, _ any) (webhook.ReplayContext, bool) {
	id, ok := s.GetDeliveryID(headers)
	if !ok || id == "" {
		return webhook.ReplayContext{}, false
	}
	rc := webhook.ReplayContext{Provider: s.Name(), ReplayKey: id, DeliveryID: id}
	ts, ok := headers.Get("svix-timestamp")
	if !ok {
		ts, ok = headers.Get("webhook-timestamp")
	}
	if ok {
		if sec, err := strconv.ParseInt(ts, 10, 64); err == nil {
			rc.Timestamp = sec
			rc.HasTimestamp = true
		}
	}
	return rc, true
}
