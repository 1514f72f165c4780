// Package llm provides language-model gateways.
package llm

import (
	"context"
	"errors"

	"github.com/voxlabs/voxrelay/internal/session"
)

// Generator abstracts conversational language-model providers. The transcript
// is passed as a snapshot; implementations must not mutate it.
type Generator interface {
	// Generate produces the model's reply to the conversation so far. The
	// last turn of the transcript is the user utterance being answered.
	Generate(ctx context.Context, transcript session.Transcript) (string, error)
}

// ErrNotConfigured is returned by the disabled generator used when no
// generation API key is present.
var ErrNotConfigured = errors.New("generation provider is not configured")

// Mock is a test double for Generator. Set GenerateFn before use.
type Mock struct {
	GenerateFn func(ctx context.Context, transcript session.Transcript) (string, error)
}

// Generate delegates to GenerateFn.
func (m *Mock) Generate(ctx context.Context, transcript session.Transcript) (string, error) {
	return m.GenerateFn(ctx, transcript)
}

type disabled struct{}

// NewDisabled returns a Generator that fails every call with
// ErrNotConfigured. It keeps the service runnable in degraded mode when the
// generation API key is absent: every chat turn falls back.
func NewDisabled() Generator {
	return disabled{}
}

func (disabled) Generate(context.Context, session.Transcript) (string, error) {
	return "", ErrNotConfigured
}
