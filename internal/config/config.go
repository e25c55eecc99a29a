package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"reloquiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	WeChat   WeChat
	Quiz     Quiz
	Quota    Quota
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds cache + quota counter configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for session signing.
type Security struct {
	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL  time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"720h"`
}

// WeChat holds miniprogram credentials for the login code exchange.
type WeChat struct {
	AppID     string `env:"WECHAT_APPID"`
	AppSecret string `env:"WECHAT_APPSECRET"`
}

// Quiz groups questionnaire runtime defaults.
type Quiz struct {
	StoreRetryAttempts int           `env:"STORE_RETRY_ATTEMPTS" envDefault:"3"`
	StoreRetryBackoff  time.Duration `env:"STORE_RETRY_BACKOFF" envDefault:"1s"`
	RuleCacheTTL       time.Duration `env:"RULE_CACHE_TTL" envDefault:"5m"`
}

// Quota governs the daily answer limit. Resolved once at startup and
// passed into the limiter; nothing reads these flags at request time.
type Quota struct {
	DailyLimitEnabled bool `env:"ENABLE_DAILY_LIMIT" envDefault:"false"`
	DailyAttempts     int  `env:"DAILY_ATTEMPTS" envDefault:"1"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
