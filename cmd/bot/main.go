package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/chair/internal/common/clock"
	"github.com/KirkDiggler/chair/internal/common/logging"
	"github.com/KirkDiggler/chair/internal/common/uuid"
	"github.com/KirkDiggler/chair/internal/config"
	"github.com/KirkDiggler/chair/internal/handlers/discord"
	"github.com/KirkDiggler/chair/internal/repositories/alias"
	"github.com/KirkDiggler/chair/internal/repositories/session"
	"github.com/KirkDiggler/chair/internal/services/expiry"
	"github.com/KirkDiggler/chair/internal/services/lfg"
	"github.com/KirkDiggler/chair/internal/services/messaging"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chair: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	logLevel := pflag.String("log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	pflag.Parse()

	if _, err := config.LoadDotEnv(*envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Initialize repositories
	aliasRepo, err := alias.NewRedis(&alias.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create alias repository: %w", err)
	}

	sessionRepo := session.NewMemory()

	// Initialize services
	systemClock := clock.New()

	scheduler, err := expiry.New(&expiry.Config{
		Clock:  systemClock,
		Logger: logger.With("component", "expiry"),
	})
	if err != nil {
		return fmt.Errorf("failed to create expiry scheduler: %w", err)
	}

	messagingService, err := messaging.NewService(&messaging.Config{})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	discordSession, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}

	messenger, err := discord.NewMessenger(discordSession)
	if err != nil {
		return fmt.Errorf("failed to create messenger: %w", err)
	}

	lfgService, err := lfg.New(&lfg.Config{
		SessionTTL:          cfg.SessionTTL,
		RequestTimeout:      cfg.RequestTimeout,
		ShutdownConcurrency: cfg.ShutdownConcurrency,
		SessionRepo:         sessionRepo,
		AliasRepo:           aliasRepo,
		Scheduler:           scheduler,
		Messenger:           messenger,
		MessagingService:    messagingService,
		Clock:               systemClock,
		IDGenerator:         uuid.New(),
		Logger:              logger.With("component", "lfg"),
	})
	if err != nil {
		return fmt.Errorf("failed to create lfg service: %w", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:        discordSession,
		ApplicationID:  cfg.ApplicationID,
		GuildID:        cfg.GuildID,
		RequestTimeout: cfg.RequestTimeout,
		LFGService:     lfgService,
		AliasRepo:      aliasRepo,
		Logger:         logger.With("component", "discord"),
	})
	if err != nil {
		return fmt.Errorf("failed to create Discord bot: %w", err)
	}

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")

	// Open pings are marked expired while the connection is still up
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()

	if err := lfgService.Shutdown(shutdownCtx); err != nil {
		logger.Warn("some sessions were not closed cleanly", "error", err)
	}

	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", "error", err)
	}

	logger.Info("bot has been shut down")
	return nil
}
