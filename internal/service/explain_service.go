package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/internal/dto"
	"github.com/plms-labs/tutor-api/internal/i18n"
	"github.com/plms-labs/tutor-api/internal/question"
	"github.com/plms-labs/tutor-api/internal/schema"
	"github.com/plms-labs/tutor-api/pkg/ai"
)

const conservativeTemperature = 0.1

// ExplainService runs the end-to-end pipeline: normalize, detect question
// shape, prompt, complete, validate, and map into the canonical view-model.
type ExplainService interface {
	Explain(ctx context.Context, req dto.ExplainRequest) (dto.ExplainResponse, error)
}

// ExplainConfig carries the explain pipeline knobs.
type ExplainConfig struct {
	FastModel   string
	DeepModel   string
	CacheTTL    time.Duration
	ForceSolver bool
}

type explainService struct {
	completer ai.Completer
	cache     *redis.Client
	cfg       ExplainConfig
	logger    zerolog.Logger
}

// NewExplainService constructs the explain pipeline service. The cache client
// may be nil, in which case every request goes upstream.
func NewExplainService(completer ai.Completer, cache *redis.Client, cfg ExplainConfig, logger zerolog.Logger) ExplainService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}

	return &explainService{
		completer: completer,
		cache:     cache,
		cfg:       cfg,
		logger:    logger.With().Str("component", "explain_service").Logger(),
	}
}

// llmQuestionSet is the raw solver output before it is wrapped into the
// canonical QuestionSet shape.
type llmQuestionSet struct {
	SourceContext string         `json:"source_context"`
	Questions     []dto.Question `json:"questions"`
}

func (s *explainService) Explain(ctx context.Context, req dto.ExplainRequest) (dto.ExplainResponse, error) {
	if req.Input.Text == "" && req.Input.ImageURL == "" {
		return dto.ExplainResponse{}, ErrEmptyExplainInput
	}

	mode := req.Mode
	if mode == "" {
		mode = dto.ModeFast
	}

	normalized := question.Normalize(req.Input.Text)

	multi := false
	if req.Input.Text != "" && !s.cfg.ForceSolver {
		multi = question.DetectMultipleQuestions(req.Input.Text)
	}

	cacheKey := explainCacheKey(normalized.Text, req.Input.ImageURL, mode, req.Conservative)
	if cached, ok := s.cachedResponse(ctx, cacheKey); ok {
		return cached, nil
	}

	prompt, err := ai.BuildPrompt(ai.TaskExplain, ai.ExplainPayload{
		Text:          normalized.Text,
		ImageURL:      req.Input.ImageURL,
		Deep:          mode == dto.ModeDeep,
		MultiQuestion: multi,
		HasBlank:      normalized.HasSingleBlank,
	})
	if err != nil {
		return dto.ExplainResponse{}, err
	}

	model := s.cfg.FastModel
	if mode == dto.ModeDeep {
		model = s.cfg.DeepModel
	}
	temperature := float32(solveTemperature)
	if req.Conservative {
		temperature = conservativeTemperature
	}

	raw, err := s.completer.Complete(ctx, prompt, ai.Options{
		Model:       model,
		Temperature: temperature,
	})
	if err != nil {
		return dto.ExplainResponse{}, err
	}

	parsed, err := schema.Decode[llmQuestionSet](raw, schema.QuestionSet)
	if err != nil {
		return dto.ExplainResponse{}, err
	}

	for i := range parsed.Questions {
		q := &parsed.Questions[i]
		q.Stem = sanitizeText(q.Stem)
		q.Answer = sanitizeText(q.Answer)
		q.OneLineReason = sanitizeText(q.OneLineReason)
		q.Choices = sanitizeAll(q.Choices)
	}

	set := dto.WrapQuestionSet(sanitizeText(parsed.SourceContext), parsed.Questions)

	first := set.Questions[0]
	response := dto.ExplainResponse{
		Kind:        first.Kind,
		Mode:        mode,
		Answer:      first.Answer,
		BriefReason: first.OneLineReason,
		QuestionSet: &set,
	}

	s.storeResponse(ctx, cacheKey, response)

	return response, nil
}

func explainCacheKey(text, imageURL string, mode dto.ExplainMode, conservative bool) string {
	variant := "default"
	if conservative {
		variant = "conservative"
	}
	sum := sha256.Sum256([]byte(text + "\x00" + imageURL + "\x00" + string(mode) + "\x00" + variant))
	return fmt.Sprintf("explain:%s", hex.EncodeToString(sum[:]))
}

func (s *explainService) cachedResponse(ctx context.Context, key string) (dto.ExplainResponse, bool) {
	if s.cache == nil {
		return dto.ExplainResponse{}, false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read explain cache")
		}
		return dto.ExplainResponse{}, false
	}

	var response dto.ExplainResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return dto.ExplainResponse{}, false
	}

	s.logger.Debug().Str("key", key).Msg("explain cache hit")
	return response, true
}

func (s *explainService) storeResponse(ctx context.Context, key string, response dto.ExplainResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store explain cache")
	}
}

// FallbackExplainResponse is the fixed degraded view-model the explain route
// answers with when the pipeline fails. The learning UI renders this shape
// directly, so it must never be replaced by a raw error body.
func FallbackExplainResponse(messages *i18n.Table) dto.ExplainResponse {
	return dto.ExplainResponse{
		Kind:        dto.KindVocab,
		Mode:        dto.ModeFast,
		Answer:      "",
		BriefReason: messages.Lookup(i18n.KeyExplainFallback),
	}
}
