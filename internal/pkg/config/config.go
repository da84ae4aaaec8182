package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	// AdminEmails are promoted to activated administrators at registration.
	AdminEmails []string `env:"ADMIN_EMAILS"`

	NotificationDuration time.Duration `env:"NOTIFICATION_DEFAULT_DURATION, default=3s"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Sync   SyncConfig
	Limits LimitsConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=wedding_planner"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SyncConfig struct {
	QuietPeriod  time.Duration `env:"SYNC_QUIET_PERIOD,  default=2s"`
	Workers      int           `env:"SYNC_WORKERS,       default=8"`
	WriteTimeout time.Duration `env:"SYNC_WRITE_TIMEOUT, default=10s"`
	// ConflictCheck conditions cloud writes on the last seen revision.
	ConflictCheck bool `env:"SYNC_CONFLICT_CHECK, default=false"`
}

type LimitsConfig struct {
	Chat     int `env:"LIMIT_FREE_CHAT,     default=5"`
	Speech   int `env:"LIMIT_FREE_SPEECH,   default=1"`
	FengShui int `env:"LIMIT_FREE_FENGSHUI, default=1"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
