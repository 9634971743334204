package schema

// Name identifies one of the declared response shapes.
type Name string

// Declared response shapes, one per LLM task.
const (
	ConceptOptions Name = "concept_options"
	SolveNote      Name = "solve_note"
	SummaryCard    Name = "summary_card"
	QuestionSet    Name = "question_set"
)

// The schema documents mirror the output-contract directives in the prompts.
// Cardinalities that a call site checks with a dedicated error (the exact
// option count, the single correct option) are deliberately not duplicated
// here.
var documents = map[Name]string{
	ConceptOptions: `{
		"type": "object",
		"required": ["options"],
		"properties": {
			"options": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["id", "label", "is_correct", "why_plausible"],
					"properties": {
						"id": {"type": "string", "enum": ["A", "B", "C", "D"]},
						"label": {"type": "string", "minLength": 1, "maxLength": 12},
						"is_correct": {"type": "boolean"},
						"why_plausible": {"type": "string", "maxLength": 40}
					}
				}
			}
		}
	}`,
	SolveNote: `{
		"type": "object",
		"required": ["kind", "md", "summary_bullets"],
		"properties": {
			"kind": {"const": "SolveNoteLite"},
			"md": {"type": "string", "minLength": 1},
			"summary_bullets": {
				"type": "array",
				"items": {"type": "string", "minLength": 1},
				"minItems": 2,
				"maxItems": 4
			}
		}
	}`,
	SummaryCard: `{
		"type": "object",
		"required": ["kind", "title", "bullets", "cta"],
		"properties": {
			"kind": {"const": "SummarizeLite"},
			"title": {"type": "string", "minLength": 1},
			"bullets": {
				"type": "array",
				"items": {"type": "string", "minLength": 1},
				"minItems": 3,
				"maxItems": 5
			},
			"cta": {
				"type": "object",
				"required": ["action_id", "label"],
				"properties": {
					"action_id": {"const": "TRY_ANOTHER"},
					"label": {"type": "string", "minLength": 1}
				}
			}
		}
	}`,
	QuestionSet: `{
		"type": "object",
		"required": ["questions"],
		"properties": {
			"source_context": {"type": "string"},
			"questions": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["kind", "stem", "answer"],
					"properties": {
						"qid": {"type": "integer", "minimum": 1},
						"kind": {"type": "string", "enum": ["vocab", "mcq", "cloze", "general"]},
						"stem": {"type": "string", "minLength": 1},
						"choices": {
							"type": "array",
							"items": {"type": "string"},
							"minItems": 2
						},
						"answer": {"type": "string", "minLength": 1},
						"answer_label": {"type": "string", "enum": ["A", "B", "C", "D"]},
						"one_line_reason": {"type": "string"},
						"distractor_rejects": {
							"type": "array",
							"items": {
								"type": "object",
								"required": ["option", "reason"],
								"properties": {
									"option": {"type": "string"},
									"reason": {"type": "string"}
								}
							}
						},
						"meta": {"type": "object"}
					}
				}
			}
		}
	}`,
}
