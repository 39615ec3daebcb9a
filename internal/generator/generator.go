// Package generator wraps the external language-model service that produces
// candidate quiz questions from a topic prompt.
package generator

import "context"

// TextGenerator is the single capability the quiz pipeline needs from the
// language-model service: one blocking completion call. Implementations do
// not retry; a failed call is surfaced to the caller as retryable.
type TextGenerator interface {
	// GenerateText sends the prompt under the given system instruction and
	// returns the raw model output.
	GenerateText(ctx context.Context, system, prompt string, temperature float32, maxTokens int) (string, error)

	// Configured reports whether the generation credential is present.
	Configured() bool
}
