package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/internal/dto"
	"github.com/plms-labs/tutor-api/internal/schema"
	"github.com/plms-labs/tutor-api/pkg/ai"
)

// SummarizeService folds a session's solved items into one summary card.
type SummarizeService interface {
	Summarize(ctx context.Context, req dto.SummarizeRequest) (dto.SummaryCard, error)
}

type summarizeService struct {
	completer ai.Completer
	validator *validator.Validate
	logger    zerolog.Logger
	model     string
}

// NewSummarizeService constructs the session summary service.
func NewSummarizeService(completer ai.Completer, validate *validator.Validate, model string, logger zerolog.Logger) SummarizeService {
	return &summarizeService{
		completer: completer,
		validator: validate,
		logger:    logger.With().Str("component", "summarize_service").Logger(),
		model:     model,
	}
}

func (s *summarizeService) Summarize(ctx context.Context, req dto.SummarizeRequest) (dto.SummaryCard, error) {
	if len(req.Items) == 0 {
		return dto.SummaryCard{}, ErrEmptySummarizeItems
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.SummaryCard{}, err
	}

	items := make([]ai.SummaryItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = ai.SummaryItem{CanonicalSkill: item.CanonicalSkill, NoteMD: item.NoteMD}
	}

	prompt, err := ai.BuildPrompt(ai.TaskSummarize, ai.SummarizePayload{
		Title: req.Title,
		Items: items,
	})
	if err != nil {
		return dto.SummaryCard{}, err
	}

	raw, err := s.completer.Complete(ctx, prompt, ai.Options{
		Model:       s.model,
		Temperature: summarizeTemperature,
	})
	if err != nil {
		return dto.SummaryCard{}, err
	}

	card, err := schema.Decode[dto.SummaryCard](raw, schema.SummaryCard)
	if err != nil {
		return dto.SummaryCard{}, err
	}

	card.Kind = dto.SummaryCardKind
	card.Title = sanitizeText(card.Title)
	card.Bullets = sanitizeAll(card.Bullets)
	card.CTA.ActionID = dto.SummaryCTAAction
	card.CTA.Label = sanitizeText(card.CTA.Label)

	return card, nil
}
