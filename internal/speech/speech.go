// Package speech converts text to audio through an external
// text-to-speech service.
package speech

import (
	"context"
	"errors"
)

// ErrSynthesisFailed indicates the TTS service could not produce audio
// for a request.
var ErrSynthesisFailed = errors.New("speech synthesis failed")

// Voice identifies a selectable TTS voice.
type Voice struct {
	ID   string `json:"voice_id"`
	Name string `json:"name"`
}

// Synthesizer turns text into an audio buffer using the given voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}
