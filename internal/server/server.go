package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"edge-shortener/internal/handler"
	"edge-shortener/internal/metrics"
	"edge-shortener/internal/middleware"
	"edge-shortener/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port int
	// AdminPort serves /health and /metrics. Zero disables the admin listener.
	AdminPort       int
	ShutdownTimeout time.Duration
}

// Server runs the public link listener and the admin listener.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	health  store.Pinger

	router   *mux.Router
	ipHeader string
	adminMux *http.ServeMux

	public *http.Server
	admin  *http.Server
}

// Option customises a Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithHealthCheck makes /health report the reachability of p.
func WithHealthCheck(p store.Pinger) Option {
	return func(s *Server) {
		s.health = p
	}
}

// New creates a new Server serving h.
func New(cfg Config, h *handler.Handler, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   slog.Default(),
		router:   NewRouter(h),
		ipHeader: h.Config().ClientIPHeader,
		adminMux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.public = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.registerAdminRoutes()
	if cfg.AdminPort > 0 {
		s.admin = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.AdminPort),
			Handler:      s.adminMux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
	}

	return s
}

// Handler returns the public handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mws := []middleware.Middleware{middleware.AccessLog(s.logger, s.clientIP)}
	if s.metrics != nil {
		mws = append(mws, middleware.Instrument(s.metrics, routeNamer(s.router)))
	}
	mws = append(mws, middleware.Timing, middleware.Recover(s.logger))

	return middleware.Chain(s.router, mws...)
}

func (s *Server) clientIP(r *http.Request) string {
	return handler.ClientIP(r, s.ipHeader)
}

// AdminHandler returns the admin handler.
func (s *Server) AdminHandler() http.Handler {
	return s.adminMux
}

func (s *Server) registerAdminRoutes() {
	s.adminMux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		s.adminMux.Handle("GET /metrics", s.metrics.Handler())
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Error = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Shutdown gracefully shuts down both listeners.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.public.Shutdown(ctx)
	if s.admin != nil {
		err = errors.Join(err, s.admin.Shutdown(ctx))
	}
	return err
}

// Run starts the server and blocks until a shutdown signal is received.
// It handles SIGINT and SIGTERM for graceful shutdown.
// The provided context can also be used to trigger shutdown.
func (s *Server) Run(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 2)
	serve := func(srv *http.Server, name string) {
		s.logger.Info("listening", "listener", name, "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("%s listener: %w", name, err)
		}
	}

	go serve(s.public, "public")
	if s.admin != nil {
		go serve(s.admin, "admin")
	}

	select {
	case sig := <-sigChan:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	case err := <-errChan:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}
