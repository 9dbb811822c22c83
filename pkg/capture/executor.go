package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ExecuteOptions describes a synthetic outbound webhook delivery (spec
// §4.10): not a replay of a stored capture, but a freshly signed
// request built from scratch so provider handlers can be exercised
// without a real upstream.
type ExecuteOptions struct {
	URL      string
	Method   string
	Headers  map[string]string
	Body     any
	Secret   string
	Provider string
	Timeout  time.Duration
}

// Executor issues Execute requests, signing them via Sign when a
// secret and provider are given.
type Executor struct {
	client *http.Client
}

func NewExecutor() *Executor {
	return &Executor{client: &http.Client{}}
}

func (e *Executor) Execute(ctx context.Context, opts ExecuteOptions) (ReplayResult, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodPost
	}

	headers := make(map[string]string, len(opts.Headers)+2)
	for k, v := range opts.Headers {
		headers[k] = v
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = "application/json"
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("capture: encode execute body: %w", err)
	}

	if opts.Secret != "" && opts.Provider != "" {
		if err := Sign(opts.Provider, opts.Secret, opts.URL, body, headers); err != nil {
			return ReplayResult{}, fmt.Errorf("capture: sign outbound request: %w", err)
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, opts.URL, bytes.NewReader(body))
	if err != nil {
		return ReplayResult{}, fmt.Errorf("capture: build execute request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(e.client, req)
}

func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(v)
	}
}
