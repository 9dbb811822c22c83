// Package providers implements the builtin Provider wire conventions
// (spec §4.1/§4.2): GitHub, Stripe, Shopify, Twilio, Slack, the Svix
// envelope (Clerk/Recall), SendGrid, Linear/generic, Ragie, Discord.
package providers

import (
	"encoding/hex"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// GitHub verifies `x-hub-signature-256: sha256=<hex>` over the raw body.
type GitHub struct {
	webhook.BaseProvider
	SecretValue string
}

func NewGitHub(secret string) *GitHub { return &GitHub{SecretValue: secret} }

func (g *GitHub) Name() string                            { return "github" }
func (g *GitHub) Secret() string                           { return g.SecretValue }
func (g *GitHub) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (g *GitHub) GetEventType(headers webhook.Headers, _ any) (string, bool) {
	v, ok := headers.Get("x-github-event")
	return v, ok && v != ""
}

func (g *GitHub) GetDeliveryID(headers webhook.Headers) (string, bool) {
	return headers.Get("x-github-delivery")
}

func (g *GitHub) Verify(rawBody []byte, headers webhook.Headers, secret string) bool {
	header, ok := headers.Get("x-hub-signature-256")
	if !ok {
		return false
	}
	encoded, ok := signature.StripPrefix(header, "sha256=")
	if !ok {
		return false
	}
	expected, err := hex.DecodeString(encoded)
	if err != nil {
		return false
	}
	computed, err := signature.Compute(signature.SHA256, secret, signature.BaseDirect(rawBody))
	if err != nil {
		return false
	}
	return signature.ConstantTimeEqual(expected, computed)
}

func (g *GitHub) GetReplayContext(headers webhook.Headers, _ any) (webhook.ReplayContext, bool) {
	id, ok := headers.Get("x-github-delivery")
	if !ok || id == "" {
		return webhook.ReplayContext{}, false
	}
	return webhook.ReplayContext{Provider: g.Name(), ReplayKey: id, DeliveryID: id}, true
}
