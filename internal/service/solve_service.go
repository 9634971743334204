package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/internal/dto"
	"github.com/plms-labs/tutor-api/internal/schema"
	"github.com/plms-labs/tutor-api/pkg/ai"
)

// SolveService writes a study note for a question the judge already graded.
type SolveService interface {
	Solve(ctx context.Context, req dto.SolveRequest) (dto.SolveNote, error)
}

type solveService struct {
	completer ai.Completer
	validator *validator.Validate
	logger    zerolog.Logger
	model     string
}

// NewSolveService constructs the solve note service.
func NewSolveService(completer ai.Completer, validate *validator.Validate, model string, logger zerolog.Logger) SolveService {
	return &solveService{
		completer: completer,
		validator: validate,
		logger:    logger.With().Str("component", "solve_service").Logger(),
		model:     model,
	}
}

func (s *solveService) Solve(ctx context.Context, req dto.SolveRequest) (dto.SolveNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SolveNote{}, err
	}

	prompt, err := ai.BuildPrompt(ai.TaskSolve, ai.SolvePayload{
		Question:       req.Question,
		CanonicalSkill: req.Judge.CanonicalSkill,
		Answer:         req.Judge.Answer,
		Steps:          req.Judge.Steps,
		Mistakes:       req.Judge.Mistakes,
	})
	if err != nil {
		return dto.SolveNote{}, err
	}

	raw, err := s.completer.Complete(ctx, prompt, ai.Options{
		Model:       s.model,
		Temperature: solveTemperature,
	})
	if err != nil {
		return dto.SolveNote{}, err
	}

	note, err := schema.Decode[dto.SolveNote](raw, schema.SolveNote)
	if err != nil {
		return dto.SolveNote{}, err
	}

	note.Kind = dto.SolveNoteKind
	note.MD = sanitizeMarkdown(note.MD)
	note.SummaryBullets = sanitizeAll(note.SummaryBullets)

	return note, nil
}
