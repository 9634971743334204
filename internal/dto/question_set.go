package dto

// QuestionSetType tags every question set payload.
const QuestionSetType = "E0_QUESTION_SET"

// Canonical question kinds assigned by the solver.
const (
	KindVocab   = "vocab"
	KindMCQ     = "mcq"
	KindCloze   = "cloze"
	KindGeneral = "general"
)

// QuestionSet is the uniform container every downstream renderer consumes. A
// single question is always wrapped into a one-element set, so consumers only
// ever handle one shape.
type QuestionSet struct {
	Type          string     `json:"type"`
	SourceContext string     `json:"source_context"`
	Questions     []Question `json:"questions"`
}

// DistractorReject explains why one wrong option is plausible but wrong.
type DistractorReject struct {
	Option string `json:"option"`
	Reason string `json:"reason"`
}

// Question is one solved question inside a set.
type Question struct {
	QID               int                `json:"qid"`
	Kind              string             `json:"kind"`
	Stem              string             `json:"stem"`
	Choices           []string           `json:"choices"`
	Answer            string             `json:"answer"`
	AnswerLabel       string             `json:"answer_label,omitempty"`
	OneLineReason     string             `json:"one_line_reason"`
	DistractorRejects []DistractorReject `json:"distractor_rejects"`
	Meta              map[string]any     `json:"meta"`
}

// WrapQuestionSet adapts validated solver output into the canonical set shape:
// a single question becomes a one-element set, a multi-question payload passes
// through unchanged. Question ids are renumbered from 1 when absent, and the
// defaultable fields are filled so consumers never see nil.
func WrapQuestionSet(sourceContext string, questions []Question) QuestionSet {
	wrapped := make([]Question, len(questions))
	for i, q := range questions {
		if q.QID <= 0 {
			q.QID = i + 1
		}
		if q.Kind == "" {
			q.Kind = KindGeneral
		}
		if q.Choices == nil {
			q.Choices = []string{}
		}
		if q.DistractorRejects == nil {
			q.DistractorRejects = []DistractorReject{}
		}
		if q.Meta == nil {
			q.Meta = map[string]any{}
		}
		wrapped[i] = q
	}

	return QuestionSet{
		Type:          QuestionSetType,
		SourceContext: sourceContext,
		Questions:     wrapped,
	}
}
