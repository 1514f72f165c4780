// Package stt provides speech-to-text gateways.
package stt

import "context"

// Transcriber abstracts speech-to-text providers.
type Transcriber interface {
	// Transcribe converts raw audio bytes into text. The audio format is
	// whatever the client uploaded; the provider is expected to sniff it.
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Mock is a test double for Transcriber. Set TranscribeFn before use.
type Mock struct {
	TranscribeFn func(ctx context.Context, audio []byte) (string, error)
}

// Transcribe delegates to TranscribeFn.
func (m *Mock) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return m.TranscribeFn(ctx, audio)
}
