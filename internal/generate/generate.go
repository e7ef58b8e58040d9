// Package generate defines the text-generation provider used to draft email
// bodies, with a Hugging Face Inference API implementation.
package generate

import (
	"context"
	"strings"
)

// Result is one completed generation. OutputTokens is the whitespace-
// delimited word count of Text, a deliberate approximation of the true
// token count kept so recorded costs stay comparable across runs.
type Result struct {
	Text         string
	OutputTokens int
}

// Generator produces text from a model identifier and a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (*Result, error)
}

// WordCount returns the number of whitespace-delimited words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
