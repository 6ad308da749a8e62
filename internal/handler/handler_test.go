package handler_test

import (
	"context"
	"sync"

	"edge-shortener/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockLinkService implements handler.LinkService for testing.
type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) Shorten(ctx context.Context, longURL string, expirationDays int64) (*domain.Link, error) {
	args := m.Called(ctx, longURL, expirationDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkService) Resolve(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// countingRecorder tallies handler outcomes.
type countingRecorder struct {
	mu          sync.Mutex
	created     int
	resolved    map[string]int
	rejected    map[string]int
	storeErrors map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		resolved:    make(map[string]int),
		rejected:    make(map[string]int),
		storeErrors: make(map[string]int),
	}
}

func (c *countingRecorder) LinkCreated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created++
}

func (c *countingRecorder) LinkResolved(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolved[outcome]++
}

func (c *countingRecorder) CreateRejected(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejected[reason]++
}

func (c *countingRecorder) StoreError(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeErrors[op]++
}
