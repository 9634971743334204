package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptConcept(t *testing.T) {
	prompt, err := BuildPrompt(TaskConcept, ConceptPayload{
		Question: "What is the synonym of 'abundant'?",
		Context:  "vocabulary drill",
	})
	require.NoError(t, err)

	require.Contains(t, prompt.User, "## Question\nWhat is the synonym of 'abundant'?")
	require.Contains(t, prompt.User, "## Context\nvocabulary drill")
	require.Contains(t, prompt.User, "exactly four options")
	require.Contains(t, prompt.User, "exactly one with is_correct true")
	require.True(t, strings.HasSuffix(prompt.User, "Return JSON only."))
}

func TestBuildPromptConceptOmitsEmptyContext(t *testing.T) {
	prompt, err := BuildPrompt(TaskConcept, ConceptPayload{Question: "Define osmosis."})
	require.NoError(t, err)
	require.NotContains(t, prompt.User, "## Context")
}

func TestBuildPromptSolveSections(t *testing.T) {
	prompt, err := BuildPrompt(TaskSolve, SolvePayload{
		Question:       "Solve 3x = 12.",
		CanonicalSkill: "linear equations",
		Answer:         "x = 4",
		Steps:          []string{"divide both sides by 3"},
		Mistakes:       []string{"multiplied instead of dividing"},
	})
	require.NoError(t, err)

	require.Contains(t, prompt.User, "## Canonical Skill\nlinear equations")
	require.Contains(t, prompt.User, "## Steps\n- divide both sides by 3")
	require.Contains(t, prompt.User, "## Mistakes\n- multiplied instead of dividing")
	require.Contains(t, prompt.User, "between 2 and 4")
}

func TestBuildPromptSolveOmitsEmptyLists(t *testing.T) {
	prompt, err := BuildPrompt(TaskSolve, SolvePayload{
		Question:       "Solve 3x = 12.",
		CanonicalSkill: "linear equations",
		Answer:         "x = 4",
	})
	require.NoError(t, err)
	require.NotContains(t, prompt.User, "## Steps")
	require.NotContains(t, prompt.User, "## Mistakes")
}

func TestBuildPromptSummarize(t *testing.T) {
	prompt, err := BuildPrompt(TaskSummarize, SummarizePayload{
		Title: "Evening session",
		Items: []SummaryItem{
			{CanonicalSkill: "fractions", NoteMD: "common denominators"},
			{CanonicalSkill: "percentages"},
		},
	})
	require.NoError(t, err)

	require.Contains(t, prompt.User, "- fractions: common denominators")
	require.Contains(t, prompt.User, "- percentages")
	require.Contains(t, prompt.User, "between 3 and 5")
	require.Contains(t, prompt.User, "TRY_ANOTHER")
}

func TestBuildPromptExplainVariants(t *testing.T) {
	single, err := BuildPrompt(TaskExplain, ExplainPayload{Text: "1+1=?"})
	require.NoError(t, err)
	require.Contains(t, single.User, "exactly one entry")

	multi, err := BuildPrompt(TaskExplain, ExplainPayload{Text: "1. a\n2. b", MultiQuestion: true})
	require.NoError(t, err)
	require.Contains(t, multi.User, "more than one independent question")

	image, err := BuildPrompt(TaskExplain, ExplainPayload{ImageURL: "https://img.example/q.png"})
	require.NoError(t, err)
	require.Equal(t, "https://img.example/q.png", image.ImageURL)
	require.Contains(t, image.User, "attached image")

	deep, err := BuildPrompt(TaskExplain, ExplainPayload{Text: "why?", Deep: true})
	require.NoError(t, err)
	require.Contains(t, deep.System, "in depth")
}

func TestBuildPromptRejectsWrongPayload(t *testing.T) {
	_, err := BuildPrompt(TaskConcept, SolvePayload{})
	require.Error(t, err)

	_, err = BuildPrompt(TaskKind("unknown"), ConceptPayload{})
	require.Error(t, err)
}
