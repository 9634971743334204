package ai

import (
	"fmt"
	"strings"
)

// TaskKind selects which prompt pair gets built.
type TaskKind string

// Prompt tasks.
const (
	TaskConcept   TaskKind = "concept"
	TaskSolve     TaskKind = "solve"
	TaskSummarize TaskKind = "summarize"
	TaskExplain   TaskKind = "explain"
)

// ConceptPayload feeds the concept-routing prompt.
type ConceptPayload struct {
	Question string
	Context  string
}

// SolvePayload feeds the solve prompt with the upstream judge output.
type SolvePayload struct {
	Question       string
	CanonicalSkill string
	Answer         string
	Steps          []string
	Mistakes       []string
}

// SummaryItem is one solved skill folded into the summarize prompt.
type SummaryItem struct {
	CanonicalSkill string
	NoteMD         string
}

// SummarizePayload feeds the session-summary prompt.
type SummarizePayload struct {
	Title string
	Items []SummaryItem
}

// ExplainPayload feeds the end-to-end explain prompt.
type ExplainPayload struct {
	Text          string
	ImageURL      string
	Deep          bool
	MultiQuestion bool
	HasBlank      bool
}

// BuildPrompt assembles the system/user message pair for a task. The user
// message concatenates labeled sections separated by blank lines, omitting
// absent values, and always ends with the output-contract directive naming
// the exact JSON keys and cardinalities expected. The downstream validator
// only rejects, it never repairs, so the directive is load-bearing.
func BuildPrompt(task TaskKind, payload any) (Prompt, error) {
	switch task {
	case TaskConcept:
		p, ok := payload.(ConceptPayload)
		if !ok {
			return Prompt{}, fmt.Errorf("concept prompt needs ConceptPayload, got %T", payload)
		}
		return conceptPrompt(p), nil
	case TaskSolve:
		p, ok := payload.(SolvePayload)
		if !ok {
			return Prompt{}, fmt.Errorf("solve prompt needs SolvePayload, got %T", payload)
		}
		return solvePrompt(p), nil
	case TaskSummarize:
		p, ok := payload.(SummarizePayload)
		if !ok {
			return Prompt{}, fmt.Errorf("summarize prompt needs SummarizePayload, got %T", payload)
		}
		return summarizePrompt(p), nil
	case TaskExplain:
		p, ok := payload.(ExplainPayload)
		if !ok {
			return Prompt{}, fmt.Errorf("explain prompt needs ExplainPayload, got %T", payload)
		}
		return explainPrompt(p), nil
	default:
		return Prompt{}, fmt.Errorf("unknown prompt task %q", task)
	}
}

type section struct {
	label string
	value string
}

func joinSections(sections []section, directive string) string {
	builder := strings.Builder{}
	for _, s := range sections {
		if strings.TrimSpace(s.value) == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString("## ")
		builder.WriteString(s.label)
		builder.WriteString("\n")
		builder.WriteString(s.value)
	}
	if builder.Len() > 0 {
		builder.WriteString("\n\n")
	}
	builder.WriteString(directive)
	return builder.String()
}

func bulletList(items []string) string {
	builder := strings.Builder{}
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("- ")
		builder.WriteString(item)
	}
	return builder.String()
}

func conceptPrompt(p ConceptPayload) Prompt {
	system := "You are a tutoring assistant building a concept-review quiz chip. " +
		"Given a student question, produce four short answer options testing the underlying concept. " +
		"Exactly one option is correct; the three distractors must each be plausible for a stated reason."

	directive := `Respond with a JSON object: {"options": [{"id": "A"|"B"|"C"|"D", "label": string, "is_correct": boolean, "why_plausible": string}]}. ` +
		"There must be exactly four options with ids A, B, C and D, and exactly one with is_correct true. " +
		"Keep every label at most 12 characters and every why_plausible at most 40 characters. Return JSON only."

	return Prompt{
		System: system,
		User: joinSections([]section{
			{"Question", p.Question},
			{"Context", p.Context},
		}, directive),
	}
}

func solvePrompt(p SolvePayload) Prompt {
	system := "You are a tutoring assistant writing a short study note for a question the student already attempted. " +
		"Use the judge verdict below; do not re-derive the answer. Write warm, concrete markdown a middle schooler can follow."

	directive := `Respond with a JSON object: {"kind": "SolveNoteLite", "md": string, "summary_bullets": [string]}. ` +
		"The md field is the full markdown note. summary_bullets must contain between 2 and 4 short takeaways. Return JSON only."

	return Prompt{
		System: system,
		User: joinSections([]section{
			{"Question", p.Question},
			{"Canonical Skill", p.CanonicalSkill},
			{"Answer", p.Answer},
			{"Steps", bulletList(p.Steps)},
			{"Mistakes", bulletList(p.Mistakes)},
		}, directive),
	}
}

func summarizePrompt(p SummarizePayload) Prompt {
	system := "You are a tutoring assistant closing a study session. " +
		"Fold the solved skills below into one encouraging summary card that names what the student practised."

	items := strings.Builder{}
	for i, item := range p.Items {
		if i > 0 {
			items.WriteString("\n")
		}
		items.WriteString("- ")
		items.WriteString(item.CanonicalSkill)
		if strings.TrimSpace(item.NoteMD) != "" {
			items.WriteString(": ")
			items.WriteString(item.NoteMD)
		}
	}

	directive := `Respond with a JSON object: {"kind": "SummarizeLite", "title": string, "bullets": [string], "cta": {"action_id": "TRY_ANOTHER", "label": string}}. ` +
		"bullets must contain between 3 and 5 entries. Return JSON only."

	return Prompt{
		System: system,
		User: joinSections([]section{
			{"Title", p.Title},
			{"Solved Items", items.String()},
		}, directive),
	}
}

func explainPrompt(p ExplainPayload) Prompt {
	system := "You are a tutoring assistant explaining exam questions. " +
		"Read the submission, solve every question it contains, and explain each answer in one line."
	if p.Deep {
		system = "You are a tutoring assistant explaining exam questions in depth. " +
			"Read the submission, solve every question it contains, show the key reasoning step, and reject each tempting distractor."
	}

	notes := []string{}
	if p.MultiQuestion {
		notes = append(notes, "The submission contains more than one independent question; answer each one as its own entry.")
	} else {
		notes = append(notes, "Treat the submission as a single question; return exactly one entry.")
	}
	if p.HasBlank {
		notes = append(notes, "The stem contains a fill-in blank; the answer is the text that belongs in the blank.")
	}
	if p.ImageURL != "" {
		notes = append(notes, "The question is in the attached image; transcribe the stem before solving.")
	}

	directive := `Respond with a JSON object: {"source_context": string, "questions": [{"qid": integer, "kind": "vocab"|"mcq"|"cloze"|"general", "stem": string, "choices": [string], "answer": string, "answer_label": "A"|"B"|"C"|"D" (only for mcq), "one_line_reason": string, "distractor_rejects": [{"option": string, "reason": string}], "meta": object}]}. ` +
		"questions must be non-empty, every stem and answer non-empty, and choices must have at least 2 entries when present. Return JSON only."

	return Prompt{
		System:   system,
		ImageURL: p.ImageURL,
		User: joinSections([]section{
			{"Submission", p.Text},
			{"Notes", bulletList(notes)},
		}, directive),
	}
}
