package service

import (
	"context"

	"github.com/pkg/errors"

	"edge-shortener/internal/domain"
	"edge-shortener/internal/shortcode"
	"edge-shortener/internal/store"
)

// CodeGenerator defines the interface for short code generation.
type CodeGenerator interface {
	Generate() string
}

// LinkService creates and resolves short links against a Store.
type LinkService struct {
	store     store.Store
	generator CodeGenerator
}

// NewLinkService creates a LinkService with the default generator.
func NewLinkService(s store.Store, generator *shortcode.Generator) *LinkService {
	return &LinkService{
		store:     s,
		generator: generator,
	}
}

// NewLinkServiceWithGenerator creates a LinkService with a custom generator (for testing).
func NewLinkServiceWithGenerator(s store.Store, generator CodeGenerator) *LinkService {
	return &LinkService{
		store:     s,
		generator: generator,
	}
}

// Shorten generates a code and writes code -> longURL with a TTL of
// expirationDays days. There is a single attempt: the code is not checked
// for existence, so a collision replaces the earlier mapping.
func (s *LinkService) Shorten(ctx context.Context, longURL string, expirationDays int64) (*domain.Link, error) {
	link := &domain.Link{
		Code: s.generator.Generate(),
		URL:  longURL,
		TTL:  domain.TTLForDays(expirationDays),
	}

	if err := s.store.Put(ctx, link.Code, link.URL, link.TTL); err != nil {
		return nil, errors.Wrap(err, "saving link")
	}

	return link, nil
}

// Resolve returns the destination URL for code.
// Returns domain.ErrNotFound when the store has no live entry.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, error) {
	longURL, err := s.store.Get(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		return "", errors.Wrap(err, "loading link")
	}
	return longURL, nil
}
