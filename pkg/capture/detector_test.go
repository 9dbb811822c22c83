package capture_test

import (
	"testing"

	"bwh/core-api/pkg/capture"

	"github.com/stretchr/testify/assert"
)

func TestDetectorRegistry_DetectsByHeader(t *testing.T) {
	testCases := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{"github", map[string]string{"x-github-event": "push"}, "github"},
		{"stripe", map[string]string{"stripe-signature": "t=1,v1=abc"}, "stripe"},
		{"shopify-topic", map[string]string{"x-shopify-topic": "orders/create"}, "shopify"},
		{"slack", map[string]string{"x-slack-signature": "v0=abc"}, "slack"},
		{"linear", map[string]string{"linear-signature": "abc"}, "linear"},
		{"twilio", map[string]string{"x-twilio-signature": "abc"}, "twilio"},
		{"discord", map[string]string{"x-signature-ed25519": "abc"}, "discord"},
		{"ragie", map[string]string{"x-ragie-signature": "abc"}, "ragie"},
		{"sendgrid", map[string]string{"x-twilio-email-event-webhook-signature": "abc"}, "sendgrid"},
	}

	reg := capture.NewDetectorRegistry()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := reg.Detect(capture.DetectorInput{Headers: tc.headers})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDetectorRegistry_Detect_NoMatchReturnsUnknown(t *testing.T) {
	reg := capture.NewDetectorRegistry()

	got := reg.Detect(capture.DetectorInput{Headers: map[string]string{"x-custom": "1"}})

	assert.Equal(t, "unknown", got)
}

func TestDetectorRegistry_Detect_ShopifyByHMACHeaderAlone(t *testing.T) {
	reg := capture.NewDetectorRegistry()

	got := reg.Detect(capture.DetectorInput{Headers: map[string]string{
		"x-shopify-hmac-sha256": "abc",
	}})

	assert.Equal(t, "shopify", got)
}

func TestDetectorRegistry_Detect_SvixFamily_RecallByEventPrefix(t *testing.T) {
	reg := capture.NewDetectorRegistry()

	got := reg.Detect(capture.DetectorInput{
		Headers: map[string]string{"svix-signature": "v1,abc"},
		Body:    map[string]any{"event": "bot.done"},
	})

	assert.Equal(t, "recall", got)
}

func TestDetectorRegistry_Detect_SvixFamily_ClerkByTypeField(t *testing.T) {
	reg := capture.NewDetectorRegistry()

	got := reg.Detect(capture.DetectorInput{
		Headers: map[string]string{"svix-signature": "v1,abc"},
		Body:    map[string]any{"type": "user.created"},
	})

	assert.Equal(t, "clerk", got)
}

func TestDetectorRegistry_Detect_SvixFamily_DefaultsToRecallWithoutBodyHints(t *testing.T) {
	reg := capture.NewDetectorRegistry()

	got := reg.Detect(capture.DetectorInput{
		Headers: map[string]string{"webhook-signature": "v1,abc", "webhook-id": "msg_1"},
	})

	assert.Equal(t, "recall", got)
}

func TestDetectorRegistry_Register_CustomDetectorCanWin(t *testing.T) {
	reg := &capture.DetectorRegistry{}
	reg.Register(func(in capture.DetectorInput) (capture.Detection, bool) {
		return capture.Detection{Provider: "custom", Confidence: 200}, true
	})

	got := reg.Detect(capture.DetectorInput{})
	assert.Equal(t, "custom", got)
}
