package webhook

import "bwh/core-api/pkg/webhook/observation"

// Builder is the immutable fluent assembler spec §3.3 describes: every
// mutator returns a new Builder with the change applied, leaving the
// receiver untouched. Call Build to obtain the finalized, request-ready
// Webhook.
type Builder struct {
	provider             Provider
	events               map[string]handlerEntry
	onError              func(err error, info ErrorInfo)
	onVerificationFailed func(reason string, headers Headers)
	bus                  *observation.Bus
	maxBodyBytes         int64
	replay               *ReplayPolicy
}

// New starts a Builder for the given Provider.
func New(provider Provider) *Builder {
	return &Builder{
		provider: provider,
		events:   map[string]handlerEntry{},
		bus:      observation.NewBus(),
	}
}

func (b *Builder) clone() *Builder {
	next := &Builder{
		provider:             b.provider,
		events:               make(map[string]handlerEntry, len(b.events)),
		onError:              b.onError,
		onVerificationFailed: b.onVerificationFailed,
		bus:                  b.bus,
		maxBodyBytes:         b.maxBodyBytes,
		replay:               b.replay,
	}
	for k, v := range b.events {
		next.events[k] = v
	}
	return next
}

// Event registers one or more handlers for name, appending to any
// handlers already registered for it. schema may be nil (treated as
// AnySchema).
func (b *Builder) Event(name string, schema Schema, handlers ...HandlerFunc) *Builder {
	next := b.clone()
	entry := next.events[name]
	if entry.schema == nil {
		if schema == nil {
			schema = AnySchema{}
		}
		entry.schema = schema
	} else if schema != nil {
		entry.schema = schema
	}
	next.events[name] = entry.withHandlers(handlers...)
	return next
}

// OnError registers the best-effort callback invoked on every pipeline
// failure (handler errors, schema-validation failures, and each earlier
// rejection); ErrorInfo.Kind names which one.
func (b *Builder) OnError(fn func(err error, info ErrorInfo)) *Builder {
	next := b.clone()
	next.onError = fn
	return next
}

// OnVerificationFailed registers the best-effort callback invoked on
// 401 outcomes.
func (b *Builder) OnVerificationFailed(fn func(reason string, headers Headers)) *Builder {
	next := b.clone()
	next.onVerificationFailed = fn
	return next
}

// Observe appends observers, returning a new Builder.
func (b *Builder) Observe(observers ...observation.Observer) *Builder {
	next := b.clone()
	next.bus = b.bus.WithObservers(observers...)
	return next
}

// MaxBodyBytes sets the size guard; 0 (the default) means unlimited.
func (b *Builder) MaxBodyBytes(n int64) *Builder {
	next := b.clone()
	next.maxBodyBytes = n
	return next
}

// WithReplayProtection enables replay protection using policy.
func (b *Builder) WithReplayProtection(policy ReplayPolicy) *Builder {
	next := b.clone()
	resolved := policy.withDefaults()
	next.replay = &resolved
	return next
}

// Build finalizes the builder into a Webhook ready to Process requests.
func (b *Builder) Build() *Webhook {
	events := make(map[string]handlerEntry, len(b.events))
	for k, v := range b.events {
		events[k] = v
	}
	return &Webhook{
		provider:             b.provider,
		events:               events,
		onError:              b.onError,
		onVerificationFailed: b.onVerificationFailed,
		bus:                  b.bus,
		maxBodyBytes:         b.maxBodyBytes,
		replay:               b.replay,
	}
}
