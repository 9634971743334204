package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/internal/dto"
	"github.com/plms-labs/tutor-api/internal/i18n"
	"github.com/plms-labs/tutor-api/internal/service"
	"github.com/plms-labs/tutor-api/internal/utils"
)

// ExplainHandler exposes the end-to-end explain endpoint consumed by the
// primary learning UI.
type ExplainHandler struct {
	explains  service.ExplainService
	validator *validator.Validate
	messages  *i18n.Table
	logger    zerolog.Logger
}

// NewExplainHandler builds the explain handler.
func NewExplainHandler(explains service.ExplainService, validate *validator.Validate, messages *i18n.Table, logger zerolog.Logger) *ExplainHandler {
	return &ExplainHandler{
		explains:  explains,
		validator: validate,
		messages:  messages,
		logger:    logger.With().Str("component", "explain_handler").Logger(),
	}
}

// Register attaches the route to the provided router group.
func (h *ExplainHandler) Register(router fiber.Router) {
	router.Post("", h.explain)
}

func (h *ExplainHandler) explain(c *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.explains.Explain(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyExplainInput) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}

		// This route feeds the learning UI directly: it degrades to the
		// fixed fallback view-model instead of surfacing a raw error body.
		requestLogger(h.logger, c).Error().Err(err).Msg("explain pipeline failed, serving fallback")
		return c.Status(fiber.StatusInternalServerError).JSON(service.FallbackExplainResponse(h.messages))
	}

	return c.JSON(response)
}
