package capture

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get/Delete when no matching capture exists.
var ErrNotFound = errors.New("capture: not found")

// Store is the capture persistence abstraction (spec §4.6). FSStore is
// the only implementation the toolkit ships, but the interface keeps
// the HTTP server and dispatcher decoupled from the on-disk layout.
type Store interface {
	Save(ctx context.Context, record CaptureRecord) (CaptureFile, error)
	List(ctx context.Context, limit int) ([]CaptureFile, error)
	Get(ctx context.Context, idOrPrefix string) (CaptureFile, error)
	Search(ctx context.Context, query string) ([]CaptureFile, error)
	Delete(ctx context.Context, idOrPrefix string) error
	DeleteAll(ctx context.Context) error
	// Subscribe registers fn for every future Save and returns an
	// unsubscribe function (spec §4.6's live-tail / dashboard hook).
	Subscribe(fn func(CaptureFile)) func()
}
