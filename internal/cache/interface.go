package cache

import (
	"context"
	"time"
)

// Counter is a shared counter store with per-key expiry.
type Counter interface {
	// Increment adds one to key and returns the new count together with the
	// time left before the key expires. The first increment of a key starts
	// a window of the given length.
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Ensure Redis implements Counter interface
var _ Counter = (*Redis)(nil)
