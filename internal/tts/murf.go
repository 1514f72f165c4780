package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultEndpoint = "https://api.murf.ai/v1/speech/generate-with-key"
	defaultVoiceID  = "en-IN-aarav"
	audioFormat     = "mp3"
)

// Murf implements Synthesizer against the Murf AI speech generation API.
type Murf struct {
	apiKey   string
	endpoint string
	voiceID  string
	client   *http.Client
}

// Interface compliance check.
var _ Synthesizer = (*Murf)(nil)

// Option configures a Murf client.
type Option func(*Murf)

// WithEndpoint overrides the API endpoint. Used by tests to point at a fake
// provider.
func WithEndpoint(u string) Option {
	return func(m *Murf) { m.endpoint = u }
}

// WithVoiceID selects the synthesis voice. Default is en-IN-aarav.
func WithVoiceID(id string) Option {
	return func(m *Murf) { m.voiceID = id }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(m *Murf) { m.client = hc }
}

// NewMurf creates a Murf synthesis client.
func NewMurf(apiKey string, opts ...Option) *Murf {
	m := &Murf{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		voiceID:  defaultVoiceID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

type generateRequest struct {
	VoiceID string `json:"voiceId"`
	Text    string `json:"text"`
	Format  string `json:"format"`
}

type generateResponse struct {
	AudioFile string `json:"audioFile"`
}

// Synthesize submits the text for speech generation and returns the hosted
// audio URL.
func (m *Murf) Synthesize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(generateRequest{
		VoiceID: m.voiceID,
		Text:    text,
		Format:  audioFormat,
	})
	if err != nil {
		return "", fmt.Errorf("murf: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("murf: %w", err)
	}
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("murf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("murf: unexpected status %s: %s", resp.Status, bytes.TrimSpace(detail))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("murf: decode response: %w", err)
	}
	if out.AudioFile == "" {
		return "", fmt.Errorf("murf: response contained no audio file URL")
	}
	return out.AudioFile, nil
}
