package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plms-labs/tutor-api/internal/utils"
)

// WarmupDeprecated answers the retired warmup flow with a permanent 410 so
// remaining callers migrate to /api/explain or /api/ai/solve.
func WarmupDeprecated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusGone, "Warmup flow has been deprecated. Use /api/solve instead.")
	}
}
