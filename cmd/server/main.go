package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"edge-shortener/internal/config"
	"edge-shortener/internal/domain"
	"edge-shortener/internal/handler"
	"edge-shortener/internal/metrics"
	"edge-shortener/internal/server"
	"edge-shortener/internal/service"
	"edge-shortener/internal/shortcode"
	"edge-shortener/internal/store"
)

func main() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = ".env"
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("opening store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if len(cfg.AllowedIPs) == 0 {
		logger.Warn("ALLOWED_IPS is empty, link creation is disabled")
	}

	m := metrics.New("shortener")
	svc := service.NewLinkService(st, shortcode.NewGenerator())
	h := handler.New(svc, handler.Config{
		APIPrefix:      cfg.APIPrefix,
		ClientIPHeader: cfg.ClientIPHeader,
		AllowedIPs:     cfg.AllowedIPs,
		Origin:         cfg.PublicOrigin,
	},
		handler.WithLogger(logger),
		handler.WithRecorder(m),
	)

	srv := server.New(server.Config{
		Port:            cfg.Port,
		AdminPort:       cfg.AdminPort,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, h,
		server.WithLogger(logger),
		server.WithMetrics(m),
		server.WithHealthCheck(st),
	)

	logger.Info("starting server",
		"port", cfg.Port,
		"admin_port", cfg.AdminPort,
		"store", cfg.StoreBackend,
		"env", cfg.Env,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// storeBackend is what the server needs from either backend.
type storeBackend interface {
	store.Store
	store.Pinger
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storeBackend, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		rs, err := store.DialRedis(ctx, store.RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return rs, func() {
			if err := rs.Close(); err != nil {
				logger.Warn("closing redis", "error", err)
			}
		}, nil
	default:
		ms := store.NewMemoryStore(domain.RealClock{})
		go ms.RunJanitor(ctx, cfg.SweepInterval, logger)
		return ms, func() {}, nil
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
