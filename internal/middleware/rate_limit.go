package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// MissionHeader names the header carrying the micro-mission identifier.
const MissionHeader = "X-Mission-ID"

// MissionRateLimit creates a per-mission rate limiter. Requests without a
// mission header fall back to a per-IP bucket. The counter map is process
// local; a multi-instance deployment needs a shared store to keep the limit
// global.
func MissionRateLimit(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 60
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			mission := c.Get(MissionHeader)
			if mission == "" {
				mission = c.IP()
			}
			return fmt.Sprintf("mission:%s", mission)
		},
	})
}
