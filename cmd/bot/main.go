package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"clubbot/internal/adapters/telegram"
	"clubbot/internal/config"
	"clubbot/internal/infrastructure/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("❌ Migration error: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database initialization error: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Redis connection error: %v", err)
	}
	defer redisClient.Close()

	bot, err := telegram.NewBot(
		cfg,
		database.NewEventRepository(pool),
		database.NewRequestRepository(pool),
		database.NewSignupRepository(pool),
		database.NewJobRepository(pool),
		database.NewUserRepository(pool),
		database.NewLocationRepository(pool),
		database.NewCapacityLedger(pool),
		telegram.NewRelayStore(redisClient),
	)
	if err != nil {
		log.Fatalf("❌ Bot startup error: %v", err)
	}

	if err := bot.Start(ctx); err != nil {
		log.Fatalf("❌ Bot stopped with error: %v", err)
	}
}
