package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/internal/dto"
	"github.com/plms-labs/tutor-api/internal/schema"
	"github.com/plms-labs/tutor-api/pkg/ai"
)

// Per-task sampling temperatures: low for tasks demanding consistency, higher
// for free-form synthesis.
const (
	conceptTemperature   = 0.1
	solveTemperature     = 0.25
	summarizeTemperature = 0.3
)

// ConceptService produces the four-option concept review chip for a question.
type ConceptService interface {
	Route(ctx context.Context, req dto.ConceptRequest) (dto.ConceptResponse, error)
}

type conceptService struct {
	completer ai.Completer
	validator *validator.Validate
	logger    zerolog.Logger
	model     string
}

// NewConceptService constructs the concept routing service.
func NewConceptService(completer ai.Completer, validate *validator.Validate, model string, logger zerolog.Logger) ConceptService {
	return &conceptService{
		completer: completer,
		validator: validate,
		logger:    logger.With().Str("component", "concept_service").Logger(),
		model:     model,
	}
}

func (s *conceptService) Route(ctx context.Context, req dto.ConceptRequest) (dto.ConceptResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ConceptResponse{}, err
	}

	prompt, err := ai.BuildPrompt(ai.TaskConcept, ai.ConceptPayload{
		Question: req.Question,
		Context:  req.Context,
	})
	if err != nil {
		return dto.ConceptResponse{}, err
	}

	raw, err := s.completer.Complete(ctx, prompt, ai.Options{
		Model:       s.model,
		Temperature: conceptTemperature,
	})
	if err != nil {
		return dto.ConceptResponse{}, err
	}

	// The count contract is checked before shape validation so a 3- or
	// 5-option payload fails with an explicit count mismatch even when the
	// individual options are malformed.
	if err := checkOptionCount(raw); err != nil {
		return dto.ConceptResponse{}, err
	}

	response, err := schema.Decode[dto.ConceptResponse](raw, schema.ConceptOptions)
	if err != nil {
		return dto.ConceptResponse{}, err
	}

	if err := checkSingleCorrect(response.Options); err != nil {
		return dto.ConceptResponse{}, err
	}

	for i := range response.Options {
		response.Options[i].Label = sanitizeText(response.Options[i].Label)
		response.Options[i].WhyPlausible = sanitizeText(response.Options[i].WhyPlausible)
	}

	return response, nil
}

func checkOptionCount(raw json.RawMessage) error {
	var doc struct {
		Options []json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Options == nil {
		// Not even an options array; leave the diagnosis to the schema.
		return nil
	}
	if len(doc.Options) != 4 {
		return &schema.CardinalityError{Field: "options", Expect: "exactly 4 options", Got: len(doc.Options)}
	}
	return nil
}

// checkSingleCorrect mechanically enforces what the prompt directive asks
// for: one and only one option marked correct. The model is not trusted on
// this.
func checkSingleCorrect(options []dto.ConceptOption) error {
	correct := 0
	for _, option := range options {
		if option.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return &schema.CardinalityError{Field: "options.is_correct", Expect: "exactly one correct option", Got: correct}
	}
	return nil
}
