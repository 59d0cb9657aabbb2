package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	APIPrefix      string        `env:"API_PREFIX,      default=/api"`
	CORSOrigins    []string      `env:"CORS_ORIGINS,    default=*"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=30s"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Chat      ChatConfig
	Telemetry TelemetryConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=720h"`
	AdminTokenTTL time.Duration `env:"ADMIN_TOKEN_TTL, default=168h"`
	AdminEmail    string        `env:"ADMIN_EMAIL,     default=admin@nyaaysathi.com"`
	// AdminPassword is hashed at startup. Empty disables admin login.
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=nyaaysathi"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type ChatConfig struct {
	APIURL   string        `env:"CHAT_API_URL, default=https://api.openai.com/v1"`
	APIKey   string        `env:"CHAT_API_KEY"`
	Model    string        `env:"CHAT_MODEL,   default=gpt-4o-mini"`
	Timeout  time.Duration `env:"CHAT_TIMEOUT, default=30s"`
	GuestRPS float64       `env:"CHAT_GUEST_RPS, default=1"`
}

type TelemetryConfig struct {
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplingRate float64 `env:"OTEL_SAMPLING_RATE, default=1"`
	ServiceName  string  `env:"SERVICE_NAME,       default=legal-api"`
}

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
