package capture

import "strings"

// DetectorInput is what a Detector inspects to guess the provider
// behind an unknown captured request (spec §4.7). Headers must be
// pre-lowercased by the caller.
type DetectorInput struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    any
}

// Detection is a candidate provider guess with a confidence score; the
// DetectorRegistry keeps the highest-scoring hit.
type Detection struct {
	Provider   string
	Confidence int
}

// Detector inspects a request and optionally reports a Detection.
type Detector func(DetectorInput) (Detection, bool)

// DetectorRegistry runs every registered Detector and keeps the
// highest-confidence match, defaulting to "unknown".
type DetectorRegistry struct {
	detectors []Detector
}

// NewDetectorRegistry returns a registry pre-loaded with the detectors
// for every provider pkg/webhook/providers ships.
func NewDetectorRegistry() *DetectorRegistry {
	r := &DetectorRegistry{}
	r.Register(builtinDetectors()...)
	return r
}

func (r *DetectorRegistry) Register(detectors ...Detector) {
	r.detectors = append(r.detectors, detectors...)
}

func (r *DetectorRegistry) Detect(input DetectorInput) string {
	best := Detection{Provider: "unknown", Confidence: -1}
	for _, d := range r.detectors {
		if det, ok := d(input); ok && det.Confidence > best.Confidence {
			best = det
		}
	}
	return best.Provider
}

func builtinDetectors() []Detector {
	return []Detector{
		headerDetector("x-github-event", "github", 100),
		headerDetector("stripe-signature", "stripe", 100),
		headerDetector("x-shopify-topic", "shopify", 100),
		headerDetector("x-shopify-hmac-sha256", "shopify", 90),
		headerDetector("x-slack-signature", "slack", 100),
		headerDetector("linear-signature", "linear", 100),
		headerDetector("x-twilio-signature", "twilio", 100),
		headerDetector("x-signature-ed25519", "discord", 100),
		headerDetector("x-ragie-signature", "ragie", 100),
		headerDetector("x-twilio-email-event-webhook-signature", "sendgrid", 100),
		svixFamilyDetector,
	}
}

func headerDetector(header, provider string, confidence int) Detector {
	return func(in DetectorInput) (Detection, bool) {
		if _, ok := in.Headers[header]; ok {
			return Detection{Provider: provider, Confidence: confidence}, true
		}
		return Detection{}, false
	}
}

// svixFamilyDetector distinguishes Clerk/Recall/raw-Svix senders that
// all share the Svix envelope, by inspecting body discriminators once
// the shared header shape is present (spec §4.7).
func svixFamilyDetector(in DetectorInput) (Detection, bool) {
	_, hasSvix := in.Headers["svix-signature"]
	_, hasWebhookSig := in.Headers["webhook-signature"]
	_, hasWebhookID := in.Headers["webhook-id"]
	if !hasSvix && !(hasWebhookSig && hasWebhookID) {
		return Detection{}, false
	}

	if m, ok := in.Body.(map[string]any); ok {
		if eventType, ok := m["event"].(string); ok {
			if strings.HasPrefix(eventType, "bot.") || strings.HasPrefix(eventType, "transcript.") {
				return Detection{Provider: "recall", Confidence: 90}, true
			}
		}
		if _, ok := m["type"].(string); ok {
			return Detection{Provider: "clerk", Confidence: 80}, true
		}
	}
	return Detection{Provider: "recall", Confidence: 50}, true
}
