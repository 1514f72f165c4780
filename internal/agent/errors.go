package agent

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline validation failures.
var (
	// ErrEmptyTranscript indicates transcription succeeded but produced no
	// discernible speech. A turn without user speech is not a valid turn.
	ErrEmptyTranscript = errors.New("transcription produced no text")

	// ErrEmptyReply indicates the generation provider returned no usable text.
	ErrEmptyReply = errors.New("generation produced no text")

	// ErrNoAudioURL indicates synthesis completed without a playable URL.
	ErrNoAudioURL = errors.New("synthesis produced no audio URL")

	// ErrTextRequired indicates a request carried blank text.
	ErrTextRequired = errors.New("text must not be empty")
)

// ProviderError marks a failure in one of the external provider gateways.
// Inside the chat pipeline it is converted to the fallback audio response and
// never surfaced to the caller as a raw error.
type ProviderError struct {
	Provider string // "transcription", "generation", "synthesis"
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func providerErr(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err}
}
