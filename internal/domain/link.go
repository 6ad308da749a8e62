package domain

import (
	"math"
	"time"
)

const (
	// DefaultExpirationDays applies when a create request carries no usable expiration.
	DefaultExpirationDays = 7

	secondsPerDay = 24 * 60 * 60

	maxDays = int64(math.MaxInt64 / int64(24*time.Hour))
)

// Link is a short code mapped to its destination URL for a limited time.
type Link struct {
	Code string
	URL  string
	TTL  time.Duration
}

// TTLForDays converts an expiration in days into the store TTL.
// Zero or negative day counts are passed through unchanged; the store decides.
// Counts beyond the range of time.Duration saturate.
func TTLForDays(days int64) time.Duration {
	switch {
	case days > maxDays:
		return time.Duration(math.MaxInt64)
	case days < -maxDays:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(days*secondsPerDay) * time.Second
}

// TTLSeconds returns the TTL in whole seconds.
func (l *Link) TTLSeconds() int64 {
	return int64(l.TTL / time.Second)
}
