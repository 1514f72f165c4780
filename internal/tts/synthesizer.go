// Package tts provides text-to-speech gateways.
package tts

import "context"

// Synthesizer abstracts text-to-speech providers that host the generated
// audio and hand back a playable URL.
type Synthesizer interface {
	// Synthesize converts text into a hosted audio URL.
	Synthesize(ctx context.Context, text string) (string, error)
}

// Mock is a test double for Synthesizer. Set SynthesizeFn before use.
type Mock struct {
	SynthesizeFn func(ctx context.Context, text string) (string, error)
}

// Synthesize delegates to SynthesizeFn.
func (m *Mock) Synthesize(ctx context.Context, text string) (string, error) {
	return m.SynthesizeFn(ctx, text)
}
