// Package capture implements the local capture/replay engine: an HTTP
// ingestion server that records requests verbatim to a content-addressed
// on-disk store, provider auto-detection, and a replay dispatcher/
// executor that re-issues them (spec §4.6-§4.10).
package capture

import (
	"time"

	"github.com/google/uuid"
)

// CaptureRecord is the on-disk representation of one intercepted
// request (spec §3.1).
type CaptureRecord struct {
	ID            string              `json:"id"`
	Timestamp     time.Time           `json:"timestamp"`
	Method        string              `json:"method"`
	URL           string              `json:"url"`
	Path          string              `json:"path"`
	Headers       map[string]string   `json:"headers"`
	Query         map[string][]string `json:"query"`
	Body          any                 `json:"body,omitempty"`
	RawBody       string              `json:"rawBody"`
	Provider      string              `json:"provider,omitempty"`
	Verified      bool                `json:"verified"`
	ContentType   string              `json:"contentType,omitempty"`
	ContentLength int                 `json:"contentLength"`
}

// CaptureFile is the unit returned by store list/get/search operations.
type CaptureFile struct {
	File    string        `json:"file"`
	Capture CaptureRecord `json:"capture"`
}

// NewRecord builds a CaptureRecord with a fresh id and UTC timestamp.
func NewRecord(method, rawURL, path string, headers map[string]string, query map[string][]string, rawBody []byte, contentType string) CaptureRecord {
	return CaptureRecord{
		ID:            newRecordID(),
		Timestamp:     time.Now().UTC(),
		Method:        method,
		URL:           rawURL,
		Path:          path,
		Headers:       headers,
		Query:         query,
		RawBody:       string(rawBody),
		ContentType:   contentType,
		ContentLength: len(rawBody),
	}
}

func newRecordID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Filename implements the "YYYY-MM-DD_HH-mm-ss_<id8>.json" scheme
// (spec §4.6/§6.2).
func (r CaptureRecord) Filename() string {
	ts := r.Timestamp.Format("2006-01-02_15-04-05")
	prefix := r.ID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return ts + "_" + prefix + ".json"
}
