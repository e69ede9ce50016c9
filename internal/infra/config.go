package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// State backends accepted by STATE_BACKEND.
const (
	StateBackendMemory   = "memory"
	StateBackendPostgres = "postgres"
	StateBackendSQLite   = "sqlite"
)

// Event sinks accepted by EVENT_SINKS.
const (
	EventSinkLog   = "log"
	EventSinkRedis = "redis"
	EventSinkNATS  = "nats"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string        `env:"APP_ENV" envDefault:"development"`
	Port               string        `env:"PORT" envDefault:"8080"`
	StateBackend       string        `env:"STATE_BACKEND" envDefault:"memory"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	SQLitePath         string        `env:"SQLITE_PATH" envDefault:"./data/fundflow.db"`
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTIssuer          string        `env:"JWT_ISSUER" envDefault:"fundflow"`
	EventSinks         []string      `env:"EVENT_SINKS" envSeparator:"," envDefault:"log"`
	EventTopicPrefix   string        `env:"EVENT_TOPIC_PREFIX" envDefault:"fundflow"`
	RedisURL           string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	NATSURL            string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RateLimitPerMin    int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	TrustProxyHeaders  bool          `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
	HTTPReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	OTLPEndpoint       string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadDotEnv reads .env files when present. Missing files are not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StateBackend = strings.ToLower(strings.TrimSpace(cfg.StateBackend))
	cfg.EventSinks = normalizeList(cfg.EventSinks)
	cfg.CORSAllowedOrigins = normalizeList(cfg.CORSAllowedOrigins)

	switch cfg.StateBackend {
	case StateBackendMemory, StateBackendSQLite:
	case StateBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres state backend")
		}
	default:
		return nil, fmt.Errorf("unsupported STATE_BACKEND %q", cfg.StateBackend)
	}

	for _, sink := range cfg.EventSinks {
		switch sink {
		case EventSinkLog, EventSinkRedis, EventSinkNATS:
		default:
			return nil, fmt.Errorf("unsupported event sink %q", sink)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RateLimitPerMin <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	return cfg, nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
