package question

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const twoOptionBlocks = `1+1=?
(A) 1 (B) 2 (C) 3 (D) 4

2+2=?
(A) 2 (B) 3 (C) 4 (D) 5`

func TestDetectMultipleQuestionsByChunks(t *testing.T) {
	require.True(t, DetectMultipleQuestions(twoOptionBlocks))
}

func TestDetectSingleOptionBlock(t *testing.T) {
	single := "1+1=?\n(A) 1 (B) 2 (C) 3 (D) 4"
	require.False(t, DetectMultipleQuestions(single))
}

func TestDetectIncompleteOptionBlocks(t *testing.T) {
	// Two chunks but only one carries the full option set.
	src := "Pick one:\n(A) yes (B) no (C) maybe (D) never\n\nExplain your choice.\n(A) because"
	require.False(t, DetectMultipleQuestions(src))
}

func TestDetectChunksAfterFullwidthFolding(t *testing.T) {
	src := "第一題\n（Ａ）甲（Ｂ）乙（Ｃ）丙（Ｄ）丁\n\n第二題\n（Ａ）子（Ｂ）丑（Ｃ）寅（Ｄ）卯"
	require.True(t, DetectMultipleQuestions(src))
}

func TestDetectMultipleQuestionsByNumbering(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want bool
	}{
		{"dot markers", "1. First question\n2. Second question", true},
		{"ideographic comma markers", "1、甲是什麼\n2、乙是什麼", true},
		{"q prefix", "Q1 define osmosis\nQ2 define diffusion", true},
		{"question word", "Question 1: add\nquestion 2: subtract", true},
		{"single marker", "1. Only one question here", false},
		{"same number repeated", "1. first draft\n1. revised draft", false},
		{"markers mid line ignored", "see item 2. for details on question 3", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DetectMultipleQuestions(tc.src))
		})
	}
}

func TestDetectEmptyInput(t *testing.T) {
	require.False(t, DetectMultipleQuestions(""))
	require.False(t, DetectMultipleQuestions("   \n\t  "))
}

func TestDetectNumberingWithoutOptions(t *testing.T) {
	// Numbering heuristic fires regardless of ABCD presence.
	src := "1. Explain photosynthesis.\n\n2. Explain respiration."
	require.True(t, DetectMultipleQuestions(src))
}
