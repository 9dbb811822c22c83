package providers

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Discord signs interactions with Ed25519, not HMAC: `x-signature-
// ed25519` over "timestamp+body", verified against the application's
// public key. The pipeline's "secret" slot carries the hex-encoded
// public key for this provider.
type Discord struct {
	webhook.BaseProvider
	PublicKeyHex string
}

func NewDiscord(publicKeyHex string) *Discord { return &Discord{PublicKeyHex: publicKeyHex} }

func (d *Discord) Name() string                             { return "discord" }
func (d *Discord) Secret() string                            { return d.PublicKeyHex }
func (d *Discord) VerificationMode() webhook.VerificationMode { return webhook.VerificationRequired }

func (d *Discord) GetEventType(_ webhook.Headers, parsedBody any) (string, bool) {
	m, ok := parsedBody.(map[string]any)
	if !ok {
		return "", false
	}
	t, ok := m["type"].(float64)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("interaction.%d", int(t)), true
}

func (d *Discord) GetDeliveryID(webhook.Headers) (string, bool) { return "", false }

func (d *Discord) Verify(rawBody []byte, headers webhook.Headers, publicKeyHex string) bool {
	sigHex, ok := headers.Get("x-signature-ed25519")
	if !ok {
		return false
	}
	ts, ok := headers.Get("x-signature-timestamp")
	if !ok {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	pubKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(pubKey) != ed25519.PublicKeySize {
		return false
	}
	message := signature.BaseConcat(ts, rawBody)
	return ed25519.Verify(ed25519.PublicKey(pubKey), message, sig)
}
