package service

import "errors"

// ErrEmptyExplainInput indicates an explain request with neither text nor an
// image URL.
var ErrEmptyExplainInput = errors.New("input text or imageUrl is required")

// ErrEmptySummarizeItems indicates a summarize request with no solved items.
var ErrEmptySummarizeItems = errors.New("items must be a non-empty array")
