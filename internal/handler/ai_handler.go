package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/internal/dto"
	"github.com/plms-labs/tutor-api/internal/schema"
	"github.com/plms-labs/tutor-api/internal/service"
	"github.com/plms-labs/tutor-api/internal/utils"
	"github.com/plms-labs/tutor-api/pkg/ai"
)

// AIHandler exposes the concept, solve and summarize endpoints.
type AIHandler struct {
	concepts  service.ConceptService
	solver    service.SolveService
	summaries service.SummarizeService
	logger    zerolog.Logger
}

// NewAIHandler builds the AI task handler.
func NewAIHandler(concepts service.ConceptService, solver service.SolveService, summaries service.SummarizeService, logger zerolog.Logger) *AIHandler {
	return &AIHandler{
		concepts:  concepts,
		solver:    solver,
		summaries: summaries,
		logger:    logger.With().Str("component", "ai_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AIHandler) Register(router fiber.Router) {
	router.Post("/concept", h.concept)
	router.Post("/solve", h.solve)
	router.Post("/summarize", h.summarize)
}

func (h *AIHandler) concept(c *fiber.Ctx) error {
	var req dto.ConceptRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Question == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "question is required")
	}

	response, err := h.concepts.Route(c.Context(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(response)
}

func (h *AIHandler) solve(c *fiber.Ctx) error {
	var req dto.SolveRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Question == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "question is required")
	}
	if req.Judge.CanonicalSkill == "" && req.Judge.Answer == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "judge is required")
	}

	note, err := h.solver.Solve(c.Context(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(note)
}

func (h *AIHandler) summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Items) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "items must be a non-empty array")
	}

	card, err := h.summaries.Summarize(c.Context(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(card)
}

func (h *AIHandler) handleError(c *fiber.Ctx, err error) error {
	logger := requestLogger(h.logger, c)

	var malformed *ai.MalformedCompletionError
	var violation *schema.ViolationError
	var cardinality *schema.CardinalityError

	switch {
	case errors.Is(err, service.ErrEmptySummarizeItems):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &malformed):
		logger.Error().Err(err).Str("raw_prefix", malformed.RawPrefix).Msg("malformed completion")
		return utils.SendError(c, fiber.StatusInternalServerError, "completion was not valid JSON")
	case errors.As(err, &violation), errors.As(err, &cardinality):
		logger.Error().Err(err).Msg("completion failed schema validation")
		return utils.SendError(c, fiber.StatusInternalServerError, "completion did not match the expected shape")
	case errors.Is(err, ai.ErrUpstreamTimeout):
		logger.Error().Err(err).Msg("completion timed out")
		return utils.SendError(c, fiber.StatusInternalServerError, "completion backend timed out")
	case errors.Is(err, ai.ErrUpstreamUnavailable):
		logger.Error().Err(err).Msg("completion backend unavailable")
		return utils.SendError(c, fiber.StatusInternalServerError, "completion backend unavailable")
	default:
		logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
