package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	completionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "plms",
		Subsystem: "ai",
		Name:      "completion_duration_seconds",
		Help:      "Duration of chat completion requests",
	}, []string{"model"})

	completionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plms",
		Subsystem: "ai",
		Name:      "completion_failures_total",
		Help:      "Number of failed chat completion requests",
	}, []string{"model", "reason"})
)

// OpenAIConfig defines configuration options for the OpenAI completer.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	MaxTokens    int
	Logger       zerolog.Logger
}

// OpenAICompleter implements Completer against the OpenAI chat completion API
// with strict JSON output. It performs a single attempt per call; retry policy
// lives in the Retrier decorator.
type OpenAICompleter struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAICompleter builds a completer using the provided configuration.
func NewOpenAICompleter(cfg OpenAIConfig) (*OpenAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(config),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/plms-labs/tutor-api/pkg/ai/openai"),
		logger: cfg.Logger,
	}, nil
}

// Complete sends the prompt to OpenAI, requests a JSON-object response, and
// returns the raw JSON payload. Transport failures map to
// ErrUpstreamUnavailable or ErrUpstreamTimeout; a non-JSON reply maps to
// MalformedCompletionError carrying a prefix of the raw text.
func (c *OpenAICompleter) Complete(parent context.Context, prompt Prompt, opts Options) (json.RawMessage, error) {
	model := opts.Model
	if model == "" {
		model = c.cfg.DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	ctx, span := c.tracer.Start(parent, "openai.complete", trace.WithAttributes(
		attribute.String("model", model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: opts.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			userMessage(prompt),
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	completionDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := ErrUpstreamUnavailable
		reason := "unavailable"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = ErrUpstreamTimeout
			reason = "timeout"
		}
		completionFailures.WithLabelValues(model, reason).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error().Err(err).Str("model", model).Msg("chat completion failed")
		return nil, fmt.Errorf("%w: %v", kind, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: no choices returned", ErrUpstreamUnavailable)
		completionFailures.WithLabelValues(model, "empty").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		err := &MalformedCompletionError{
			RawPrefix: rawPrefix(content),
			Err:       fmt.Errorf("response is not valid JSON"),
		}
		completionFailures.WithLabelValues(model, "malformed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error().Str("model", model).Str("raw_prefix", err.RawPrefix).Msg("non-JSON completion")
		return nil, err
	}

	return json.RawMessage(content), nil
}

func userMessage(prompt Prompt) openai.ChatCompletionMessage {
	if prompt.ImageURL == "" {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User}
	}

	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt.User},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: prompt.ImageURL}},
		},
	}
}
