package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/plms-labs/tutor-api/internal/dto"
	"github.com/plms-labs/tutor-api/internal/schema"
)

func newSummarizeService(stub *stubCompleter) SummarizeService {
	return NewSummarizeService(stub, validator.New(validator.WithRequiredStructEnabled()), "gpt-4o-mini", testLogger())
}

func TestSummarizeSuccess(t *testing.T) {
	card := `{"kind":"SummarizeLite","title":"Tonight you practised","bullets":["fractions","percentages","unit rates"],
		"cta":{"action_id":"TRY_ANOTHER","label":"再試一題"}}`
	stub := &stubCompleter{raw: json.RawMessage(card)}

	resp, err := newSummarizeService(stub).Summarize(context.Background(), dto.SummarizeRequest{
		Title: "Evening session",
		Items: []dto.SummarizeItem{{CanonicalSkill: "fractions", NoteMD: "common denominators"}},
	})
	require.NoError(t, err)
	require.Equal(t, dto.SummaryCardKind, resp.Kind)
	require.Equal(t, dto.SummaryCTAAction, resp.CTA.ActionID)
	require.Len(t, resp.Bullets, 3)
	require.InDelta(t, 0.3, stub.opts[0].Temperature, 1e-6)
}

func TestSummarizeEmptyItemsNoUpstreamCall(t *testing.T) {
	stub := &stubCompleter{}

	_, err := newSummarizeService(stub).Summarize(context.Background(), dto.SummarizeRequest{Items: []dto.SummarizeItem{}})
	require.ErrorIs(t, err, ErrEmptySummarizeItems)
	require.Equal(t, 0, stub.calls)
}

func TestSummarizeRejectsBulletUnderflow(t *testing.T) {
	card := `{"kind":"SummarizeLite","title":"t","bullets":["only","two"],
		"cta":{"action_id":"TRY_ANOTHER","label":"go"}}`
	stub := &stubCompleter{raw: json.RawMessage(card)}

	_, err := newSummarizeService(stub).Summarize(context.Background(), dto.SummarizeRequest{
		Items: []dto.SummarizeItem{{CanonicalSkill: "fractions"}},
	})

	var violation *schema.ViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "/bullets", violation.Path)
}
