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

const fourOptions = `{"options":[
	{"id":"A","label":"plentiful","is_correct":true,"why_plausible":""},
	{"id":"B","label":"scarce","is_correct":false,"why_plausible":"opposite"},
	{"id":"C","label":"absent","is_correct":false,"why_plausible":"extreme case"},
	{"id":"D","label":"average","is_correct":false,"why_plausible":"neutral guess"}
]}`

func newConceptService(stub *stubCompleter) ConceptService {
	return NewConceptService(stub, validator.New(validator.WithRequiredStructEnabled()), "gpt-4o-mini", testLogger())
}

func TestConceptRouteSuccess(t *testing.T) {
	stub := &stubCompleter{raw: json.RawMessage(fourOptions)}
	svc := newConceptService(stub)

	resp, err := svc.Route(context.Background(), dto.ConceptRequest{Question: "What is the synonym of 'abundant'?"})
	require.NoError(t, err)
	require.Len(t, resp.Options, 4)

	ids := map[string]bool{}
	correct := 0
	for _, option := range resp.Options {
		ids[option.ID] = true
		if option.IsCorrect {
			correct++
		}
	}
	require.Len(t, ids, 4)
	require.Equal(t, 1, correct)

	require.Equal(t, 1, stub.calls)
	require.InDelta(t, 0.1, stub.opts[0].Temperature, 1e-6)
}

func TestConceptRouteRejectsWrongOptionCount(t *testing.T) {
	three := `{"options":[
		{"id":"A","label":"a","is_correct":true,"why_plausible":""},
		{"id":"B","label":"b","is_correct":false,"why_plausible":""},
		{"id":"C","label":"c","is_correct":false,"why_plausible":""}
	]}`
	stub := &stubCompleter{raw: json.RawMessage(three)}

	_, err := newConceptService(stub).Route(context.Background(), dto.ConceptRequest{Question: "q"})

	var cardinality *schema.CardinalityError
	require.ErrorAs(t, err, &cardinality)
	require.Equal(t, "options", cardinality.Field)
	require.Equal(t, 3, cardinality.Got)
}

func TestConceptRouteCountCheckedBeforeShape(t *testing.T) {
	// Five malformed options still fail on count, not shape.
	five := `{"options":[{},{},{},{},{}]}`
	stub := &stubCompleter{raw: json.RawMessage(five)}

	_, err := newConceptService(stub).Route(context.Background(), dto.ConceptRequest{Question: "q"})

	var cardinality *schema.CardinalityError
	require.ErrorAs(t, err, &cardinality)
	require.Equal(t, 5, cardinality.Got)
}

func TestConceptRouteRejectsTwoCorrectOptions(t *testing.T) {
	twoCorrect := `{"options":[
		{"id":"A","label":"a","is_correct":true,"why_plausible":""},
		{"id":"B","label":"b","is_correct":true,"why_plausible":""},
		{"id":"C","label":"c","is_correct":false,"why_plausible":""},
		{"id":"D","label":"d","is_correct":false,"why_plausible":""}
	]}`
	stub := &stubCompleter{raw: json.RawMessage(twoCorrect)}

	_, err := newConceptService(stub).Route(context.Background(), dto.ConceptRequest{Question: "q"})

	var cardinality *schema.CardinalityError
	require.ErrorAs(t, err, &cardinality)
	require.Equal(t, "options.is_correct", cardinality.Field)
	require.Equal(t, 2, cardinality.Got)
}

func TestConceptRouteValidationSkipsUpstream(t *testing.T) {
	stub := &stubCompleter{raw: json.RawMessage(fourOptions)}

	_, err := newConceptService(stub).Route(context.Background(), dto.ConceptRequest{})

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Equal(t, 0, stub.calls)
}

func TestConceptRouteSanitizesLabels(t *testing.T) {
	tainted := `{"options":[
		{"id":"A","label":"<b>bold</b>","is_correct":true,"why_plausible":""},
		{"id":"B","label":"b","is_correct":false,"why_plausible":"<script>x</script>"},
		{"id":"C","label":"c","is_correct":false,"why_plausible":""},
		{"id":"D","label":"d","is_correct":false,"why_plausible":""}
	]}`
	stub := &stubCompleter{raw: json.RawMessage(tainted)}

	resp, err := newConceptService(stub).Route(context.Background(), dto.ConceptRequest{Question: "q"})
	require.NoError(t, err)
	require.Equal(t, "bold", resp.Options[0].Label)
	require.Empty(t, resp.Options[1].WhyPlausible)
}
