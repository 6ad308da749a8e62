package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"edge-shortener/internal/domain"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// MemoryStore is a thread-safe in-memory Store with TTL expiry driven by a Clock.
// Expired entries are hidden from Get immediately and removed by Sweep.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]memoryEntry
	clock domain.Clock
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(clock domain.Clock) *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]memoryEntry),
		clock: clock,
	}
}

// Get retrieves the value stored under key.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.data[key]
	if !exists || entry.expired(s.clock.Now()) {
		return "", domain.ErrNotFound
	}

	return entry.value, nil
}

// Put stores value under key until ttl elapses. Last write wins.
func (s *MemoryStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if ttl <= 0 {
		return domain.ErrInvalidTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = memoryEntry{
		value:     value,
		expiresAt: s.clock.Now().Add(ttl),
	}
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of entries held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep removes all expired entries and returns how many were removed.
func (s *MemoryStore) Sweep(ctx context.Context) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var removed int64
	for key, entry := range s.data {
		if entry.expired(now) {
			delete(s.data, key)
			removed++
		}
	}

	return removed, nil
}

// RunJanitor calls Sweep every interval until ctx is cancelled.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Sweep(ctx)
			if err != nil {
				return
			}
			if removed > 0 {
				logger.Debug("swept expired links", "removed", removed)
			}
		}
	}
}
