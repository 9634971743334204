package ai

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// RetryConfig bounds the retry policy applied around a Completer.
type RetryConfig struct {
	Attempts       int
	InitialBackoff time.Duration
	AttemptTimeout time.Duration
}

// Retrier wraps a Completer with bounded attempts, exponential backoff and a
// per-attempt timeout. Only transport-level failures are retried; a malformed
// JSON reply is returned immediately because a retry would re-bill the same
// broken generation.
type Retrier struct {
	next   Completer
	cfg    RetryConfig
	logger zerolog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetrier decorates next with the retry policy.
func NewRetrier(next Completer, cfg RetryConfig, logger zerolog.Logger) *Retrier {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 30 * time.Second
	}

	return &Retrier{
		next:   next,
		cfg:    cfg,
		logger: logger.With().Str("component", "ai_retrier").Logger(),
		sleep:  sleepContext,
	}
}

// Complete runs the wrapped completer until it succeeds, fails terminally, or
// the attempt budget is exhausted. The last error is returned unchanged so
// callers can still match it with errors.Is / errors.As.
func (r *Retrier) Complete(ctx context.Context, prompt Prompt, opts Options) (json.RawMessage, error) {
	backoff := r.cfg.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= r.cfg.Attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.AttemptTimeout)
		raw, err := r.next.Complete(attemptCtx, prompt, opts)
		cancel()

		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
		if attempt == r.cfg.Attempts {
			break
		}

		r.logger.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("completion failed, retrying")
		if err := r.sleep(ctx, backoff); err != nil {
			return nil, lastErr
		}
		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrUpstreamTimeout)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
