package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	APIURL    string        `env:"STORERATING_API_URL, default=https://roxiler-systems-backend-bu80.onrender.com/api"`
	Timeout   time.Duration `env:"STORERATING_TIMEOUT, default=10s"`
	LogLevel  string        `env:"LOG_LEVEL,           default=warn"`
	LogPretty bool          `env:"LOG_PRETTY,          default=true"`
	// MetricsTextfile, when set, receives a Prometheus text dump on exit.
	MetricsTextfile string `env:"METRICS_TEXTFILE"`

	Session SessionConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=file"`
	// File defaults to $HOME/.storerating/session.json.
	File string `env:"SESSION_FILE"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
	Prefix   string `env:"REDIS_PREFIX,   default=storerating"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l so tests can supply a map.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Session.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("config: unknown SESSION_BACKEND %q", cfg.Session.Backend)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("config: STORERATING_TIMEOUT must be positive, got %s", cfg.Timeout)
	}

	if cfg.Session.Backend == BackendFile && cfg.Session.File == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home for SESSION_FILE: %w", err)
		}
		cfg.Session.File = filepath.Join(home, ".storerating", "session.json")
	}
	return &cfg, nil
}
