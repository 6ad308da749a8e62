package config

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Env             string
	LogLevel        string
	Port            int
	AdminPort       int
	ShutdownTimeout time.Duration

	APIPrefix      string
	ClientIPHeader string
	AllowedIPs     []string
	PublicOrigin   string

	StoreBackend   string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	SweepInterval  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", 8080)
	v.SetDefault("ADMIN_PORT", 9090)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)

	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("CLIENT_IP_HEADER", "CF-Connecting-IP")
	v.SetDefault("ALLOWED_IPS", "")
	v.SetDefault("PUBLIC_ORIGIN", "")

	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "link:")
	v.SetDefault("SWEEP_INTERVAL", time.Minute)
}

// Load reads configuration from defaults, then the optional env-format file
// at path, then the process environment. Later sources win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrapf(err, "reading config file %s", path)
			}
		}
	}

	cfg := &Config{
		Env:             v.GetString("ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Port:            v.GetInt("PORT"),
		AdminPort:       v.GetInt("ADMIN_PORT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),

		APIPrefix:      v.GetString("API_PREFIX"),
		ClientIPHeader: v.GetString("CLIENT_IP_HEADER"),
		AllowedIPs:     splitList(v.GetString("ALLOWED_IPS")),
		PublicOrigin:   v.GetString("PUBLIC_ORIGIN"),

		StoreBackend:   strings.ToLower(v.GetString("STORE_BACKEND")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		RedisKeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		SweepInterval:  v.GetDuration("SWEEP_INTERVAL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.AdminPort < 0 || c.AdminPort > 65535 {
		return fmt.Errorf("invalid ADMIN_PORT %d", c.AdminPort)
	}
	if c.AdminPort == c.Port {
		return fmt.Errorf("ADMIN_PORT must differ from PORT (%d)", c.Port)
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX %q must start with /", c.APIPrefix)
	}
	if c.StoreBackend == BackendRedis && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required for the redis backend")
	}
	if c.StoreBackend == BackendMemory && c.SweepInterval <= 0 {
		return fmt.Errorf("invalid SWEEP_INTERVAL %s", c.SweepInterval)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
