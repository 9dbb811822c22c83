package webhook

// VerificationMode controls whether the pipeline requires a valid
// signature before running handlers.
type VerificationMode string

const (
	VerificationRequired VerificationMode = "required"
	VerificationDisabled VerificationMode = "disabled"
)

// ReplayContext carries the provider-specific idempotency material used
// to derive a replay key, per spec §4.2.
type ReplayContext struct {
	Provider      string
	ReplayKey     string
	DeliveryID    string
	Timestamp     int64 // unix seconds
	HasTimestamp  bool
}

// Provider is the capability bundle that turns one provider's wire
// conventions into uniform pipeline input (spec §3.1/§4.2).
type Provider interface {
	// Name identifies the provider for env-var lookup and observation.
	Name() string
	// Secret returns a statically-configured secret, or "" if none —
	// the pipeline still falls back to ProcessOptions.Secret and the
	// environment per spec §4.5.1.
	Secret() string
	VerificationMode() VerificationMode
	GetEventType(headers Headers, parsedBody any) (string, bool)
	GetDeliveryID(headers Headers) (string, bool)
	Verify(rawBody []byte, headers Headers, secret string) bool
	// GetPayload optionally unwraps an envelope. Providers that don't
	// need this embed BaseProvider, whose default is the identity.
	GetPayload(parsedBody any) any
	// GetReplayContext optionally extracts idempotency material.
	// Providers that don't support replay protection embed BaseProvider,
	// whose default always returns (zero, false).
	GetReplayContext(headers Headers, parsedBody any) (ReplayContext, bool)
}

// BaseProvider supplies the optional Provider methods' defaults so
// concrete providers only implement what's specific to them.
type BaseProvider struct{}

func (BaseProvider) GetPayload(parsedBody any) any { return parsedBody }

func (BaseProvider) GetReplayContext(Headers, any) (ReplayContext, bool) {
	return ReplayContext{}, false
}
