package webhook

import (
	"time"

	"bwh/core-api/pkg/webhook/replay"
)

// DuplicatePolicy controls what status a reserved-key conflict produces.
type DuplicatePolicy string

const (
	OnDuplicateIgnore   DuplicatePolicy = "ignore"
	OnDuplicateConflict DuplicatePolicy = "conflict"
)

// KeyFunc derives a canonical replay key from a ReplayContext, or
// reports no key (replay_skipped).
type KeyFunc func(ReplayContext) (string, bool)

// DefaultKeyFunc namespaces the context's ReplayKey by provider.
func DefaultKeyFunc(rc ReplayContext) (string, bool) {
	if rc.ReplayKey == "" {
		return "", false
	}
	return rc.Provider + ":" + rc.ReplayKey, true
}

// ReplayPolicy configures replay protection for a Webhook.
type ReplayPolicy struct {
	Store        replay.Store
	KeyFunc      KeyFunc
	InFlightTTL  time.Duration
	CommitTTL    time.Duration
	ToleranceSec int64 // 0 disables freshness checking
	OnDuplicate  DuplicatePolicy
}

// withDefaults fills in a zero-value TTL with a sane default rather
// than rejecting it; an explicit negative TTL is left as-is and
// surfaces as replay.ErrInvalidTTL from the Store's own Reserve/Commit
// call, not from here, so a bad policy fails on first use rather than
// at Build time.
func (p ReplayPolicy) withDefaults() ReplayPolicy {
	if p.KeyFunc == nil {
		p.KeyFunc = DefaultKeyFunc
	}
	if p.InFlightTTL == 0 {
		p.InFlightTTL = 30 * time.Second
	}
	if p.CommitTTL == 0 {
		p.CommitTTL = 24 * time.Hour
	}
	if p.OnDuplicate == "" {
		p.OnDuplicate = OnDuplicateConflict
	}
	return p
}
