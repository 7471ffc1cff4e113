package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"recruit-platform/internal/api/quizgen"
	"recruit-platform/internal/config"
	"recruit-platform/internal/logger"
	"recruit-platform/internal/notify"
	"recruit-platform/internal/ranking"
	"recruit-platform/internal/scheduler"
	"recruit-platform/internal/storage/postgres"
	"recruit-platform/internal/storage/redis"
	"recruit-platform/internal/uploads"
	"recruit-platform/internal/web"
	"recruit-platform/internal/web/handlers"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting recruitment platform",
		zap.String("log_level", cfg.LogLevel),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("debug", cfg.Debug),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	resumes, err := uploads.New(cfg.UploadDir, log)
	if err != nil {
		log.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	quizClient := quizgen.New(cfg.QuizAPIURL, cfg.QuizAPIKey, cfg.QuizAPITimeout, log)
	log.Info("quiz API client created", zap.String("endpoint", cfg.QuizAPIURL))

	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Fatal("failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
	}

	hctx := &handlers.Context{
		Store:    store,
		Cache:    cache,
		Quiz:     quizClient,
		Uploads:  resumes,
		Notifier: notifier,
		Ranker:   ranking.New(nil),
		Config:   cfg,
		Logger:   log,
	}

	server := web.New(cfg.HTTPAddr, web.NewRouter(hctx, cache, cache), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("starting upload sweeper...")
	sweeper := scheduler.NewUploadSweeper(store, resumes, cfg.SweepInterval, cfg.OrphanGrace, log)

	go sweeper.Start(ctx)

	log.Info("server is running...")
	log.Info("press Ctrl+C to stop")

	if err := server.Start(ctx); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")

	log.Info("server stopped")
}
