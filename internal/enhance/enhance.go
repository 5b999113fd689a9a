// Package enhance rewrites transcript chunks through a language model
// before synthesis. Enhancement is best-effort: callers fall back to
// the original text when it fails.
package enhance

import "context"

// Enhancer rewrites a piece of transcript text while preserving its
// meaning.
type Enhancer interface {
	Enhance(ctx context.Context, text string) (string, error)
}

// Passthrough returns text unchanged. Used when no language model is
// configured or enhancement is disabled.
type Passthrough struct{}

// Enhance returns the input as-is.
func (Passthrough) Enhance(_ context.Context, text string) (string, error) {
	return text, nil
}
