package webhook

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"bwh/core-api/pkg/webhook/observation"
	"bwh/core-api/pkg/webhook/replay"
)

// Webhook is the finalized, request-ready receiver: an immutable
// provider, event/handler map, and optional replay policy, built by
// Builder.Build. Process implements the state machine of spec §4.5.1.
type Webhook struct {
	provider             Provider
	events               map[string]handlerEntry
	onError              func(err error, info ErrorInfo)
	onVerificationFailed func(reason string, headers Headers)
	bus                  *observation.Bus
	maxBodyBytes         int64
	replay               *ReplayPolicy
}

// Process runs one request through the receiver pipeline. It never
// panics for ordinary inputs, never suspends outside verify/replay-
// store/handler calls, and always emits exactly one "completed"
// observation, last (spec invariant 3.2.5).
func (w *Webhook) Process(ctx context.Context, opts ProcessOptions) ProcessResult {
	start := time.Now()
	headers := opts.Headers
	if headers == nil {
		headers = Headers{}
	}

	base := observation.Base{
		Provider:     w.provider.Name(),
		RawBodyBytes: len(opts.RawBody),
		StartTime:    start,
		ReceivedAt:   start,
	}
	w.emit(observation.KindRequestReceived, base)

	var (
		result     ProcessResult
		replayKey  string
		keyHeld    bool
	)

	maxBody := w.maxBodyBytes
	if opts.MaxBodyBytes > 0 {
		maxBody = opts.MaxBodyBytes
	}
	if maxBody > 0 && int64(len(opts.RawBody)) > maxBody {
		w.emit(observation.KindBodyTooLarge, base)
		werr := newError(KindPayloadTooLarge, "Payload too large", nil)
		w.safeOnError(werr, ErrorInfo{Kind: werr.Kind})
		result = failResult(werr)
		return w.finish(ctx, result, base, false, keyHeld, replayKey)
	}

	var parsedBody any
	if err := json.Unmarshal(opts.RawBody, &parsedBody); err != nil {
		w.emit(observation.KindJSONParseFailed, base, withErr(err))
		werr := newError(KindInvalidJSON, "Invalid JSON payload", err)
		w.safeOnError(werr, ErrorInfo{Kind: werr.Kind})
		result = failResult(werr)
		return w.finish(ctx, result, base, false, keyHeld, replayKey)
	}

	eventType, hasEventType := w.provider.GetEventType(headers, parsedBody)
	base.EventType, base.HasEventType = eventType, hasEventType
	deliveryID, hasDeliveryID := w.provider.GetDeliveryID(headers)
	base.DeliveryID, base.HasDeliveryID = deliveryID, hasDeliveryID

	secret := w.resolveSecret(opts.Secret)

	if w.provider.VerificationMode() == VerificationRequired {
		if secret == "" {
			const reason = "Missing webhook secret"
			w.emit(observation.KindVerificationFailed, base, withReason(reason))
			w.safeOnVerificationFailed(reason, headers)
			werr := newError(KindMissingSecret, reason, nil)
			w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: eventType, DeliveryID: deliveryID})
			result = failResult(werr)
			return w.finish(ctx, result, base, false, keyHeld, replayKey)
		}
		if !w.provider.Verify(opts.RawBody, headers, secret) {
			const reason = "Signature verification failed"
			w.emit(observation.KindVerificationFailed, base, withReason(reason))
			w.safeOnVerificationFailed(reason, headers)
			werr := newError(KindVerificationFailed, reason, nil)
			w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: eventType, DeliveryID: deliveryID})
			result = failResult(werr)
			return w.finish(ctx, result, base, false, keyHeld, replayKey)
		}
		w.emit(observation.KindVerificationSucceeded, base)
	}

	if w.replay != nil {
		replayCtx, hasCtx := w.provider.GetReplayContext(headers, parsedBody)
		if hasCtx && w.replay.ToleranceSec > 0 && replayCtx.HasTimestamp {
			delta := start.Unix() - replayCtx.Timestamp
			if delta < 0 {
				delta = -delta
			}
			if delta > w.replay.ToleranceSec {
				w.emit(observation.KindReplayFreshnessRejected, base)
				werr := newError(KindFreshnessRejected, "Replay timestamp outside tolerance window", nil)
				w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: eventType, DeliveryID: deliveryID})
				result = failResult(werr)
				return w.finish(ctx, result, base, false, keyHeld, replayKey)
			}
		}

		key, hasKey := w.replay.KeyFunc(replayCtx)
		if !hasKey {
			w.emit(observation.KindReplaySkipped, base)
		} else {
			reserveResult, err := w.replay.Store.Reserve(ctx, key, w.replay.InFlightTTL)
			if err != nil {
				werr := newError(KindReplayStoreFailed, "Replay protection failed", err)
				w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: eventType, DeliveryID: deliveryID})
				result = failResult(werr)
				return w.finish(ctx, result, base, false, keyHeld, replayKey)
			}
			if reserveResult == replay.Reserved {
				w.emit(observation.KindReplayReserved, base)
				keyHeld = true
				replayKey = key
			} else {
				w.emit(observation.KindReplayDuplicate, base)
				if w.replay.OnDuplicate == OnDuplicateIgnore {
					result = ProcessResult{Status: 200, EventType: eventType, Body: &ProcessResultBody{OK: true}}
					return w.finish(ctx, result, base, true, keyHeld, replayKey)
				}
				werr := newError(KindDuplicateDelivery, "Duplicate webhook delivery", nil)
				w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: eventType, DeliveryID: deliveryID})
				result = failResult(werr)
				return w.finish(ctx, result, base, false, keyHeld, replayKey)
			}
		}
	}

	entry, hasEntry := handlerEntry{}, false
	if hasEventType {
		entry, hasEntry = w.events[eventType]
	}
	if !hasEntry || len(entry.handlers) == 0 {
		w.emit(observation.KindEventUnhandled, base)
		result = ProcessResult{Status: 204, EventType: eventType}
		return w.finish(ctx, result, base, true, keyHeld, replayKey)
	}

	payload := w.provider.GetPayload(parsedBody)
	validated, verr := entry.schema.Validate(payload)
	if verr != nil {
		w.emit(observation.KindSchemaValidationFailed, base, withErr(verr))
		werr := newError(KindSchemaInvalid, "Schema validation failed", verr)
		w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: eventType, DeliveryID: deliveryID, Payload: payload})
		result = failResult(werr)
		return w.finish(ctx, result, base, false, keyHeld, replayKey)
	}
	w.emit(observation.KindSchemaValidationSucceeded, base)

	hctx := HandlerContext{
		EventType:     eventType,
		Provider:      w.provider.Name(),
		DeliveryID:    deliveryID,
		HasDeliveryID: hasDeliveryID,
		Headers:       headers,
		RawBody:       string(opts.RawBody),
		ReceivedAt:    start.UnixMilli(),
	}

	count := len(entry.handlers)
	for i, h := range entry.handlers {
		w.emit(observation.KindHandlerStarted, base, withIndex(i, count))
		if err := h(validated, hctx); err != nil {
			w.emit(observation.KindHandlerFailed, base, withIndex(i, count), withErr(err))
			werr := newError(KindHandlerFailed, "Handler execution failed", err)
			w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: eventType, DeliveryID: deliveryID, Payload: validated})
			result = failResult(werr)
			return w.finish(ctx, result, base, false, keyHeld, replayKey)
		}
		w.emit(observation.KindHandlerSucceeded, base, withIndex(i, count))
	}

	result = ProcessResult{Status: 200, EventType: eventType, Body: &ProcessResultBody{OK: true}}
	return w.finish(ctx, result, base, true, keyHeld, replayKey)
}

// finish runs the replay finalize step (which may override result per
// spec §4.5.1's "pipeline degrades to a 500" rule) and always emits
// completed last.
func (w *Webhook) finish(ctx context.Context, result ProcessResult, base observation.Base, success, keyHeld bool, key string) ProcessResult {
	if keyHeld && w.replay != nil {
		if override, ok := w.finalizeReplay(ctx, key, success, base); ok {
			result = override
		}
	}
	w.emit(observation.KindCompleted, base, withCompletion(result.Status, result.Status < 400))
	return result
}

func (w *Webhook) finalizeReplay(ctx context.Context, key string, success bool, base observation.Base) (ProcessResult, bool) {
	if success {
		if err := w.replay.Store.Commit(ctx, key, w.replay.CommitTTL); err != nil {
			werr := newError(KindReplayStoreFailed, "Replay protection failed", err)
			w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: base.EventType, DeliveryID: base.DeliveryID})
			return failResult(werr), true
		}
		w.emit(observation.KindReplayCommitted, base)
		return ProcessResult{}, false
	}
	if err := w.replay.Store.Release(ctx, key); err != nil {
		werr := newError(KindReplayStoreFailed, "Replay protection failed", err)
		w.safeOnError(werr, ErrorInfo{Kind: werr.Kind, EventType: base.EventType, DeliveryID: base.DeliveryID})
		return failResult(werr), true
	}
	w.emit(observation.KindReplayReleased, base)
	return ProcessResult{}, false
}

// resolveSecret implements the fallback chain of spec §4.5.1: explicit
// option, then provider-level static secret, then
// <PROVIDER_UPPER>_WEBHOOK_SECRET, then the global WEBHOOK_SECRET.
func (w *Webhook) resolveSecret(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if s := w.provider.Secret(); s != "" {
		return s
	}
	envName := strings.ToUpper(w.provider.Name()) + "_WEBHOOK_SECRET"
	if s := os.Getenv(envName); s != "" {
		return s
	}
	return os.Getenv("WEBHOOK_SECRET")
}

func (w *Webhook) emit(kind observation.Kind, base observation.Base, opts ...func(*observation.Event)) {
	ev := observation.Event{Kind: kind, Base: base}
	for _, o := range opts {
		o(&ev)
	}
	w.bus.Emit(ev)
}

func (w *Webhook) safeOnError(err error, info ErrorInfo) {
	if w.onError == nil {
		return
	}
	defer func() { recover() }()
	w.onError(err, info)
}

func (w *Webhook) safeOnVerificationFailed(reason string, headers Headers) {
	if w.onVerificationFailed == nil {
		return
	}
	defer func() { recover() }()
	w.onVerificationFailed(reason, headers)
}

// failResult turns a pipeline *Error into the transport-agnostic result,
// using the taxonomy in errors.go to pick the HTTP status (spec §4.5.1).
func failResult(err *Error) ProcessResult {
	return ProcessResult{Status: statusForKind(err.Kind), Body: &ProcessResultBody{OK: false, Error: err.Message}}
}

func withErr(err error) func(*observation.Event) {
	return func(e *observation.Event) { e.Err = err }
}

func withReason(reason string) func(*observation.Event) {
	return func(e *observation.Event) { e.Reason = reason }
}

func withIndex(i, count int) func(*observation.Event) {
	return func(e *observation.Event) { e.Index = i; e.Count = count }
}

func withCompletion(status int, success bool) func(*observation.Event) {
	return func(e *observation.Event) { e.Status = status; e.Success = success }
}
