package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"

	"github.com/plms-labs/tutor-api/pkg/ai"
)

type stubCompleter struct {
	raw     json.RawMessage
	err     error
	calls   int
	prompts []ai.Prompt
	opts    []ai.Options
}

func (s *stubCompleter) Complete(_ context.Context, prompt ai.Prompt, opts ai.Options) (json.RawMessage, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
