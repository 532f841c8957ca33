package main

import (
	"context"
	"log"

	"github.com/gabapcia/solrelay/internal/config"
	"github.com/gabapcia/solrelay/internal/handlers/cli"
	"github.com/gabapcia/solrelay/internal/handlers/rest"
	"github.com/gabapcia/solrelay/internal/infra/metadata/dexscreener"
	"github.com/gabapcia/solrelay/internal/infra/notifier/discord"
	"github.com/gabapcia/solrelay/internal/infra/price/static"
	"github.com/gabapcia/solrelay/internal/infra/storage/redis"
	"github.com/gabapcia/solrelay/internal/notify"
	"github.com/gabapcia/solrelay/internal/pkg/logger"
	"github.com/gabapcia/solrelay/internal/pkg/telemetry"
	"github.com/gabapcia/solrelay/internal/relay"
	"github.com/gabapcia/solrelay/internal/walletregistry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	telemetryShutdown, err := telemetry.Init(ctx, cfg.ServiceName)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer telemetryShutdown(ctx)

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	storage, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to redis", "error", err)
	}
	defer storage.Close()

	var (
		registry = walletregistry.New(storage)
		sender   = discord.New(cfg.DiscordWebhookURL)
		resolver = dexscreener.New()
		oracle   = static.New(cfg.SolPriceUSD)

		notifier = notify.New(resolver, sender, storage, notify.WithPriceOracle(oracle))
		relaySvc = relay.New(storage, notifier)

		server = rest.New(cfg.HTTPAddr, relaySvc, rest.WithSharedSecret(cfg.WebhookSecret))
	)

	if err := cli.Run(ctx, registry, notifier, server); err != nil {
		logger.Fatal(ctx, "solrelay terminated with an error", "error", err)
	}
}
