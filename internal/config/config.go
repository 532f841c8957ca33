// Package config loads the process configuration from the environment. A
// .env file in the working directory is honored when present, real
// environment variables always win.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the relay.
type Config struct {
	// Logging and telemetry.
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"solrelay"`

	// Webhook ingestion.
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`

	// Wallet registry storage.
	RedisAddr     string `envconfig:"REDIS_ADDR" required:"true"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`

	// Notification delivery.
	DiscordWebhookURL string `envconfig:"DISCORD_WEBHOOK_URL" required:"true"`

	// USD estimates for native amounts. Zero disables them.
	SolPriceUSD float64 `envconfig:"SOL_PRICE_USD"`
}

// Load reads the configuration from the environment, optionally seeded from
// a .env file. Missing required settings fail loading.
func Load() (Config, error) {
	// Best effort: a missing .env file simply means plain env vars.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	return cfg, nil
}
