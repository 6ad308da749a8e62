package handler

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"

	"edge-shortener/internal/domain"
)

//go:embed expired.html
var expiredPage []byte

// LinkService defines the service interface.
// This allows testing handlers without a real store.
type LinkService interface {
	Shorten(ctx context.Context, longURL string, expirationDays int64) (*domain.Link, error)
	Resolve(ctx context.Context, code string) (string, error)
}

// Recorder receives handler outcomes for metrics.
type Recorder interface {
	LinkCreated()
	LinkResolved(outcome string)
	CreateRejected(reason string)
	StoreError(op string)
}

type nopRecorder struct{}

func (nopRecorder) LinkCreated()          {}
func (nopRecorder) LinkResolved(string)   {}
func (nopRecorder) CreateRejected(string) {}
func (nopRecorder) StoreError(string)     {}

// Handler serves the create, resolve and not-found behaviours.
// Its configuration is fixed at construction.
type Handler struct {
	service  LinkService
	cfg      Config
	allowed  map[string]struct{}
	logger   *slog.Logger
	recorder Recorder
}

// Option customises a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(h *Handler) {
		h.recorder = r
	}
}

// New creates a new Handler with the given dependencies.
func New(service LinkService, cfg Config, opts ...Option) *Handler {
	cfg = cfg.withDefaults()

	h := &Handler{
		service:  service,
		cfg:      cfg,
		allowed:  make(map[string]struct{}, len(cfg.AllowedIPs)),
		logger:   slog.Default(),
		recorder: nopRecorder{},
	}
	for _, ip := range cfg.AllowedIPs {
		h.allowed[ip] = struct{}{}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Config returns the effective configuration.
func (h *Handler) Config() Config {
	return h.cfg
}

// NotFound answers any request that is neither a create nor a resolve.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: message})
}

// writeInternalError is the generic response for store failures. The cause
// is logged, never returned to the client.
func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.recorder.StoreError(op)
	h.logger.ErrorContext(r.Context(), "store operation failed",
		"op", op,
		"path", r.URL.Path,
		"error", err,
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
