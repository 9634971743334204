package service

import "github.com/microcosm-cc/bluemonday"

// Model-produced text is rendered by the learning UI, so any HTML the model
// smuggles into markdown or plain fields is stripped before it leaves the
// service layer.
var (
	markdownPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

func sanitizeMarkdown(md string) string {
	return markdownPolicy.Sanitize(md)
}

func sanitizeText(text string) string {
	return plainTextPolicy.Sanitize(text)
}

func sanitizeAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = sanitizeText(item)
	}
	return out
}
