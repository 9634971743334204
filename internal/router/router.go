package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/plms-labs/tutor-api/internal/config"
	"github.com/plms-labs/tutor-api/internal/handler"
	"github.com/plms-labs/tutor-api/internal/middleware"
	"github.com/plms-labs/tutor-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AIHandler      *handler.AIHandler
	ExplainHandler *handler.ExplainHandler
	Cache          *redis.Client
	StartedAt      time.Time
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	startedAt := deps.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	api.Get("/heartbeat", handler.Heartbeat(cfg, deps.Cache, startedAt))

	// Retired warmup flow: permanent 410 on both verbs.
	warmup := handler.WarmupDeprecated()
	api.Get("/warmup/keypoint-mcq-simple", warmup)
	api.Post("/warmup/keypoint-mcq-simple", warmup)

	rateLimit := middleware.MissionRateLimit(cfg.MissionRateLimit, time.Minute)

	if deps.AIHandler != nil {
		aiGroup := api.Group("/ai", rateLimit)
		deps.AIHandler.Register(aiGroup)
	}

	if deps.ExplainHandler != nil {
		explainGroup := api.Group("/explain", rateLimit)
		deps.ExplainHandler.Register(explainGroup)
	}
}
