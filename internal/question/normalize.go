package question

import (
	"regexp"
	"strings"
)

// NormalizedInput is the canonical (halfwidth) form of a raw submission plus
// the structural flags derived from it.
type NormalizedInput struct {
	Text              string `json:"text"`
	HasSingleBlank    bool   `json:"has_single_blank"`
	HasMultipleChunks bool   `json:"has_multiple_chunks"`
}

var fullwidthFolder = strings.NewReplacer(
	"（", "(",
	"）", ")",
	"Ａ", "A",
	"Ｂ", "B",
	"Ｃ", "C",
	"Ｄ", "D",
	"ａ", "a",
	"ｂ", "b",
	"ｃ", "c",
	"ｄ", "d",
)

// parenPair captures a parenthesis pair and its interior.
var parenPair = regexp.MustCompile(`\(([^()]*)\)`)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// Normalize folds fullwidth punctuation and option letters to their halfwidth
// forms and derives the structural shape flags. It is pure and idempotent:
// normalizing already-halfwidth text returns it unchanged.
func Normalize(raw string) NormalizedInput {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = fullwidthFolder.Replace(text)

	return NormalizedInput{
		Text:              text,
		HasSingleBlank:    hasBlank(text),
		HasMultipleChunks: len(splitChunks(text)) >= 2,
	}
}

// hasBlank reports whether text contains a fill-in blank: a parenthesis pair
// whose interior is empty or whitespace only. A parenthesized numeral such as
// a sub-question number `(1)` or a year `(1995)` is not a blank.
func hasBlank(text string) bool {
	for _, match := range parenPair.FindAllStringSubmatch(text, -1) {
		interior := strings.TrimSpace(strings.ReplaceAll(match[1], "　", " "))
		if interior == "" {
			return true
		}
		if digitsOnly.MatchString(interior) {
			continue
		}
	}
	return false
}

var chunkSeparator = regexp.MustCompile(`\n{2,}`)

// splitChunks divides text into blank-line separated blocks, dropping
// whitespace-only blocks.
func splitChunks(text string) []string {
	parts := chunkSeparator.Split(text, -1)
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}
