package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Prompt is a system/user message pair ready for the chat-completion API.
// ImageURL, when set, is attached to the user message as an image part.
type Prompt struct {
	System   string
	User     string
	ImageURL string
}

// Options are the per-task completion knobs supplied by the caller.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Completer describes a chat-completion backend that returns strict JSON.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt, opts Options) (json.RawMessage, error)
}

// ErrUpstreamUnavailable indicates the completion backend could not be
// reached or answered with a transport-level failure.
var ErrUpstreamUnavailable = errors.New("completion backend unavailable")

// ErrUpstreamTimeout indicates the completion call exceeded its deadline.
var ErrUpstreamTimeout = errors.New("completion backend timed out")

// MalformedCompletionError indicates the backend answered but the payload was
// not valid JSON. RawPrefix carries the first bytes of the response for
// diagnosis.
type MalformedCompletionError struct {
	RawPrefix string
	Err       error
}

func (e *MalformedCompletionError) Error() string {
	return fmt.Sprintf("malformed completion: %v (raw: %q)", e.Err, e.RawPrefix)
}

func (e *MalformedCompletionError) Unwrap() error {
	return e.Err
}

const rawPrefixLimit = 200

func rawPrefix(content string) string {
	runes := []rune(content)
	if len(runes) <= rawPrefixLimit {
		return content
	}
	return string(runes[:rawPrefixLimit])
}
