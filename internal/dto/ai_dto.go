package dto

// ConceptRequest asks for concept-review options around a single question.
type ConceptRequest struct {
	Question string `json:"question" validate:"required"`
	Context  string `json:"context,omitempty"`
}

// ConceptOption is one entry of the four-option concept review chip set.
type ConceptOption struct {
	ID           string `json:"id" validate:"required,oneof=A B C D"`
	Label        string `json:"label" validate:"required,max=12"`
	IsCorrect    bool   `json:"is_correct"`
	WhyPlausible string `json:"why_plausible" validate:"max=40"`
}

// ConceptResponse carries exactly four options, one of them correct.
type ConceptResponse struct {
	Options []ConceptOption `json:"options"`
}

// JudgeResult is the upstream judge output handed to the solve task as input.
type JudgeResult struct {
	CanonicalSkill string   `json:"canonical_skill" validate:"required"`
	Answer         string   `json:"answer" validate:"required"`
	Steps          []string `json:"steps"`
	Mistakes       []string `json:"mistakes"`
}

// SolveRequest asks for a solve note for a judged question.
type SolveRequest struct {
	Question string      `json:"question" validate:"required"`
	Judge    JudgeResult `json:"judge" validate:"required"`
}

// SolveNote is the markdown explanation produced by the solve task.
type SolveNote struct {
	Kind           string   `json:"kind"`
	MD             string   `json:"md"`
	SummaryBullets []string `json:"summary_bullets"`
}

// SolveNoteKind tags every solve note payload.
const SolveNoteKind = "SolveNoteLite"

// SummarizeItem is one solved skill to be folded into a summary card.
type SummarizeItem struct {
	CanonicalSkill string `json:"canonical_skill" validate:"required"`
	NoteMD         string `json:"note_md"`
}

// SummarizeRequest asks for a session summary card over solved items.
type SummarizeRequest struct {
	Title string          `json:"title,omitempty"`
	Items []SummarizeItem `json:"items" validate:"required,min=1,dive"`
}

// SummaryCTA is the single call-to-action attached to a summary card.
type SummaryCTA struct {
	ActionID string `json:"action_id"`
	Label    string `json:"label"`
}

// SummaryCard is the session summary returned to the render layer.
type SummaryCard struct {
	Kind    string     `json:"kind"`
	Title   string     `json:"title"`
	Bullets []string   `json:"bullets"`
	CTA     SummaryCTA `json:"cta"`
}

// Summary card constants.
const (
	SummaryCardKind  = "SummarizeLite"
	SummaryCTAAction = "TRY_ANOTHER"
)
