package holds

import (
	"context"
	"time"
)

// Store is the hold backend. The redis implementation is authoritative in
// production; the in-memory implementation carries single-node deployments
// and tests. Both give the same all-or-nothing guarantee: a hold either
// captures every requested seat or none of them.
type Store interface {
	// Hold reserves every seat or fails with ErrSeatHeld naming a conflicting
	// seat. The hold expires after ttl.
	Hold(ctx context.Context, holdID, eventID, customerKey string, seats []string, ttl time.Duration) error

	// Release frees the hold's seats and returns how many were released.
	Release(ctx context.Context, holdID string) (int, error)

	// Get returns the hold, or ErrHoldNotFound when missing or expired.
	Get(ctx context.Context, holdID string) (*Hold, error)
}
