package domain

import "errors"

var (
	// ErrNotFound indicates the key is absent from the store, either never
	// written or already evicted. The two cases are not distinguished.
	ErrNotFound = errors.New("link not found")

	// ErrInvalidTTL indicates a put was attempted with a non-positive TTL.
	ErrInvalidTTL = errors.New("ttl must be positive")
)
