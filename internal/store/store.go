package store

import (
	"context"
	"time"
)

// Store is the key-value contract the link handler relies on. Records are
// written once and read until the store evicts them when their TTL lapses.
// All implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key was never written or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Put writes value under key with the given time-to-live, replacing any
	// existing value. Returns domain.ErrInvalidTTL if ttl is not positive.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
