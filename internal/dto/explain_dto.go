package dto

// ExplainMode selects prompt verbosity and temperature, not a different
// pipeline.
type ExplainMode string

// Explain modes.
const (
	ModeFast ExplainMode = "fast"
	ModeDeep ExplainMode = "deep"
)

// RawInput is a student submission: text or an image URL. Exactly one of the
// two is expected populated; the boundary enforces that at least one is.
type RawInput struct {
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ExplainRequest is the /api/explain request body.
type ExplainRequest struct {
	Input        RawInput    `json:"input"`
	Mode         ExplainMode `json:"mode" validate:"omitempty,oneof=fast deep"`
	Conservative bool        `json:"conservative,omitempty"`
}

// ExplainResponse is the mode-tagged explanation view-model handed to the
// render layer. On upstream failure the route still answers with this shape,
// filled with the fixed degraded fallback, never a raw error body.
type ExplainResponse struct {
	Kind        string       `json:"kind"`
	Mode        ExplainMode  `json:"mode"`
	Answer      string       `json:"answer"`
	BriefReason string       `json:"briefReason"`
	QuestionSet *QuestionSet `json:"questionSet,omitempty"`
}
