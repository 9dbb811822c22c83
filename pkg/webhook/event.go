package webhook

// WebhookEvent is an immutable declaration of a named event and the
// schema its payload must satisfy. providerBrand is documentation only:
// at runtime only Name and Schema matter (spec §9 drops the compile-time
// discriminator since Go has no phantom-type need here).
type WebhookEvent struct {
	Name          string
	Schema        Schema
	ProviderBrand string
}

// NewEvent declares an event. A nil schema is treated as AnySchema.
func NewEvent(name string, schema Schema, providerBrand string) WebhookEvent {
	if schema == nil {
		schema = AnySchema{}
	}
	return WebhookEvent{Name: name, Schema: schema, ProviderBrand: providerBrand}
}

// HandlerFunc processes a validated payload for one matched event.
type HandlerFunc func(payload any, hctx HandlerContext) error

// HandlerContext is shared by every handler registered for a given event
// within a single request.
type HandlerContext struct {
	EventType  string
	Provider   string
	DeliveryID string
	HasDeliveryID bool
	Headers    Headers
	RawBody    string
	ReceivedAt int64 // unix millis
}

// handlerEntry is the per-event-name record the builder accumulates.
type handlerEntry struct {
	schema   Schema
	handlers []HandlerFunc
}

func (e handlerEntry) withHandlers(more ...HandlerFunc) handlerEntry {
	next := handlerEntry{schema: e.schema}
	next.handlers = make([]HandlerFunc, 0, len(e.handlers)+len(more))
	next.handlers = append(next.handlers, e.handlers...)
	next.handlers = append(next.handlers, more...)
	return next
}
