package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the uniform error body for every failing route.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}
