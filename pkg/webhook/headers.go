// Package webhook implements the receiver pipeline, provider abstraction,
// and supporting entities for verified, schema-validated webhook receivers.
package webhook

import "strings"

// Headers is the normalized form every downstream component sees:
// lower-cased keys, single string values.
type Headers map[string]string

// NormalizeMulti lower-cases keys and collapses multi-valued headers
// (e.g. from net/http.Header) to their first element.
func NormalizeMulti(raw map[string][]string) Headers {
	out := make(Headers, len(raw))
	for k, v := range raw {
		if len(v) == 0 {
			continue
		}
		out[strings.ToLower(k)] = v[0]
	}
	return out
}

// Normalize lower-cases the keys of a single-valued header map.
func Normalize(raw map[string]string) Headers {
	out := make(Headers, len(raw))
	for k, v := range raw {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Get looks up a header case-insensitively.
func (h Headers) Get(key string) (string, bool) {
	v, ok := h[strings.ToLower(key)]
	return v, ok
}

// Clone returns a shallow copy so callers can't mutate a shared map.
func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
