package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/plms-labs/tutor-api/internal/config"
)

// HeartbeatResponse is the diagnostics payload behind /api/heartbeat.
type HeartbeatResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Service       string    `json:"service"`
	Environment   string    `json:"environment"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	FastModel     string    `json:"fast_model"`
	DeepModel     string    `json:"deep_model"`
	Cache         string    `json:"cache"`
}

// HeartbeatError is the failure body for a failed heartbeat probe.
type HeartbeatError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Heartbeat returns a handler reporting service diagnostics. Responses are
// marked no-store so load balancers and browsers always probe live state.
func Heartbeat(cfg config.Config, cache *redis.Client, startedAt time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")

		cacheState := "unconfigured"
		if cache != nil {
			if err := cache.Ping(c.Context()).Err(); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(HeartbeatError{
					Error:   "heartbeat_failed",
					Message: err.Error(),
				})
			}
			cacheState = "ok"
		}

		return c.JSON(HeartbeatResponse{
			Status:        "ok",
			Timestamp:     time.Now().UTC(),
			Service:       cfg.AppName,
			Environment:   cfg.AppEnv,
			UptimeSeconds: time.Since(startedAt).Seconds(),
			FastModel:     cfg.FastModel,
			DeepModel:     cfg.DeepModel,
			Cache:         cacheState,
		})
	}
}
