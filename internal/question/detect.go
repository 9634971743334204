package question

import (
	"regexp"
	"strings"
)

var optionLabels = []string{"(a)", "(b)", "(c)", "(d)"}

// numberedMarker matches a line-leading question marker: `3.`, `3、`, `Q3` or
// `Question 3` (case-insensitive).
var numberedMarker = regexp.MustCompile(`(?mi)^\s*(?:([0-9]+)\s*[.、]|q\s*([0-9]+)\b|question\s+([0-9]+)\b)`)

// DetectMultipleQuestions reports whether src contains more than one
// independent question. Two heuristics are combined by OR: the chunk heuristic
// runs over the halfwidth-normalized text, the numbering heuristic over the
// raw text as submitted.
func DetectMultipleQuestions(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}

	byChunks := hasMultipleOptionChunks(Normalize(src).Text)
	byNumbering := hasMultipleNumberedMarkers(src)

	return byChunks || byNumbering
}

// hasMultipleOptionChunks reports whether at least two blank-line separated
// chunks each carry a complete (A)(B)(C)(D) option block. A single question's
// options live inside one chunk; two or more complete blocks imply a batched
// submission.
func hasMultipleOptionChunks(normalized string) bool {
	qualifying := 0
	for _, chunk := range splitChunks(normalized) {
		if chunkHasAllOptions(chunk) {
			qualifying++
			if qualifying >= 2 {
				return true
			}
		}
	}
	return false
}

func chunkHasAllOptions(chunk string) bool {
	lowered := strings.ToLower(chunk)
	for _, label := range optionLabels {
		if !strings.Contains(lowered, label) {
			return false
		}
	}
	return true
}

// hasMultipleNumberedMarkers reports whether src contains two or more distinct
// line-leading question numbers, regardless of option blocks.
func hasMultipleNumberedMarkers(src string) bool {
	seen := map[string]struct{}{}
	for _, match := range numberedMarker.FindAllStringSubmatch(src, -1) {
		number := match[1]
		if number == "" {
			number = match[2]
		}
		if number == "" {
			number = match[3]
		}
		if number == "" {
			continue
		}
		seen[strings.TrimLeft(number, "0")] = struct{}{}
		if len(seen) >= 2 {
			return true
		}
	}
	return false
}
