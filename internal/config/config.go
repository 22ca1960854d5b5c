package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BackendURL      string        `envconfig:"BACKEND_URL" default:"http://localhost:8080/api"`
	UserID          int64         `envconfig:"STORE_USER_ID" default:"1"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"20s"`
	Currency        string        `envconfig:"CURRENCY" default:"usd"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	NotificationTTL time.Duration `envconfig:"NOTIFICATION_TTL" default:"2500ms"`
	NavigateDelay   time.Duration `envconfig:"NAVIGATE_DELAY" default:"1200ms"`

	// Circuit breaker on the primary catalog tier.
	BreakerFailures uint32        `envconfig:"CATALOG_BREAKER_FAILURES" default:"3"`
	BreakerCooldown time.Duration `envconfig:"CATALOG_BREAKER_COOLDOWN" default:"30s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
