package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/internal/config"
	"github.com/plms-labs/tutor-api/internal/database"
	"github.com/plms-labs/tutor-api/internal/handler"
	"github.com/plms-labs/tutor-api/internal/i18n"
	"github.com/plms-labs/tutor-api/internal/middleware"
	"github.com/plms-labs/tutor-api/internal/router"
	"github.com/plms-labs/tutor-api/internal/service"
	"github.com/plms-labs/tutor-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	}

	completer, err := ai.NewOpenAICompleter(ai.OpenAIConfig{
		APIKey:       cfg.OpenAIAPIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		DefaultModel: cfg.FastModel,
		MaxTokens:    cfg.MaxTokens,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("failed to create completion client: %v", err)
	}

	retrying := ai.NewRetrier(completer, ai.RetryConfig{
		Attempts:       cfg.RetryAttempts,
		InitialBackoff: cfg.RetryBackoff,
		AttemptTimeout: cfg.CompletionTimeout,
	}, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())
	messages := i18n.NewTable(i18n.Locale(cfg.Locale), logger)

	conceptService := service.NewConceptService(retrying, validate, cfg.FastModel, logger)
	solveService := service.NewSolveService(retrying, validate, cfg.FastModel, logger)
	summarizeService := service.NewSummarizeService(retrying, validate, cfg.FastModel, logger)
	explainService := service.NewExplainService(retrying, cache, service.ExplainConfig{
		FastModel:   cfg.FastModel,
		DeepModel:   cfg.DeepModel,
		CacheTTL:    cfg.ExplainCacheTTL,
		ForceSolver: cfg.ForceSolver,
	}, logger)

	aiHandler := handler.NewAIHandler(conceptService, solveService, summarizeService, logger)
	explainHandler := handler.NewExplainHandler(explainService, validate, messages, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AIHandler:      aiHandler,
		ExplainHandler: explainHandler,
		Cache:          cache,
		StartedAt:      time.Now(),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
