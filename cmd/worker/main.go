package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/aurenecom/storefront-backend/internal/notifications"
	"github.com/aurenecom/storefront-backend/internal/push"
	"github.com/aurenecom/storefront-backend/pkg/config"
	"github.com/aurenecom/storefront-backend/pkg/db"
	"github.com/aurenecom/storefront-backend/pkg/logger"
	"github.com/aurenecom/storefront-backend/pkg/migrate"
	"github.com/aurenecom/storefront-backend/pkg/outbox/idempotency"
	"github.com/aurenecom/storefront-backend/pkg/pubsub"
	"github.com/aurenecom/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis client", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub client", err)
		}
	}()

	manager, err := idempotency.NewManager(redisClient, cfg.Checkout.IdempotencyTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to build idempotency manager", err)
		os.Exit(1)
	}

	var pushSender push.Sender
	if cfg.FCM.ProjectID != "" {
		fcmClient, err := push.NewFCMClient(context.Background(), cfg.FCM)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap fcm client", err)
			os.Exit(1)
		}
		pushSender = fcmClient
	} else {
		logg.Warn(context.Background(), "fcm project not set, push delivery disabled")
	}

	pushService, err := push.NewService(push.NewRepository(dbClient.DB()), pushSender, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build push service", err)
		os.Exit(1)
	}

	consumer, err := notifications.NewConsumer(pushService, pubsubClient.DomainSubscription(), manager, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build notification consumer", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": "worker",
	})
	logg.Info(ctx, "starting notification worker")

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "notification worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "worker shutting down gracefully")
}
