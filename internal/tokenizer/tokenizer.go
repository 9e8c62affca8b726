// Package tokenizer provides the token-count oracle used to bound chunk
// sizes. The default counter estimates 4 characters per token, the same
// accounting the rest of the platform uses for Gemini budgeting; a model
// specific tokenizer can be swapped in behind the Counter interface.
package tokenizer

import "unicode/utf8"

// Counter counts tokens in a span of text.
type Counter interface {
	CountTokens(text string) int
}

// Estimator is the default Counter. It approximates tokens as runes/4,
// rounding up, with a minimum of 1 for non-empty text.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

func (e *Estimator) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text)
	tokens := (n + 3) / 4
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
