package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// hopByHopHeaders are stripped from a replayed request's captured
// headers; the transport (or the new target) sets these itself.
var hopByHopHeaders = map[string]struct{}{
	"host":            {},
	"content-length":  {},
	"connection":      {},
	"accept-encoding": {},
}

// ReplayOptions overrides how a stored capture is re-delivered.
type ReplayOptions struct {
	TargetURL string
	Method    string
	Headers   map[string]string
}

// ReplayResult is the outcome of a replayed or executed delivery.
type ReplayResult struct {
	Status     int
	StatusText string
	Headers    map[string][]string
	BodyText   string
	DurationMs int64
}

// ExecutionError wraps a transport failure with the elapsed duration
// before it occurred (spec §4.9).
type ExecutionError struct {
	DurationMs int64
	Err        error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("capture: transport failed after %dms: %v", e.DurationMs, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Dispatcher re-issues a previously captured request against a new
// target, verbatim minus hop-by-hop headers (spec §4.9).
type Dispatcher struct {
	store  Store
	client *http.Client
}

func NewDispatcher(store Store, client *http.Client) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Dispatcher{store: store, client: client}
}

func (d *Dispatcher) Replay(ctx context.Context, captureID string, opts ReplayOptions) (ReplayResult, error) {
	cf, err := d.store.Get(ctx, captureID)
	if err != nil {
		return ReplayResult{}, err
	}
	record := cf.Capture

	method := opts.Method
	if method == "" {
		method = record.Method
	}

	body, err := requestBody(record)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("capture: encode replay body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, opts.TargetURL, bytes.NewReader(body))
	if err != nil {
		return ReplayResult{}, fmt.Errorf("capture: build replay request: %w", err)
	}
	applyHeaders(req, record.Headers, opts.Headers)

	return do(d.client, req)
}

func requestBody(record CaptureRecord) ([]byte, error) {
	if record.RawBody != "" {
		return []byte(record.RawBody), nil
	}
	if record.Body == nil {
		return nil, nil
	}
	return json.Marshal(record.Body)
}

func applyHeaders(req *http.Request, original, overrides map[string]string) {
	for k, v := range original {
		if _, hop := hopByHopHeaders[strings.ToLower(k)]; hop {
			continue
		}
		req.Header.Set(k, v)
	}
	for k, v := range overrides {
		req.Header.Set(k, v)
	}
}

func do(client *http.Client, req *http.Request) (ReplayResult, error) {
	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return ReplayResult{}, &ExecutionError{DurationMs: elapsed, Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return ReplayResult{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Headers:    resp.Header,
		BodyText:   string(respBody),
		DurationMs: elapsed,
	}, nil
}
