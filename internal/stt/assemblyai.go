package stt

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
	defaultBaseURL      = "https://api.assemblyai.com"
	defaultPollInterval = 3 * time.Second
)

// AssemblyAI implements Transcriber against the AssemblyAI REST API: the
// audio is uploaded first, then a transcript job is created and polled until
// it reaches a terminal status.
type AssemblyAI struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

// Interface compliance check.
var _ Transcriber = (*AssemblyAI)(nil)

// Option configures an AssemblyAI client.
type Option func(*AssemblyAI)

// WithBaseURL overrides the API base URL. Used by tests to point at a fake
// provider.
func WithBaseURL(u string) Option {
	return func(c *AssemblyAI) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *AssemblyAI) { c.client = hc }
}

// WithPollInterval sets how often the transcript job is polled.
func WithPollInterval(d time.Duration) Option {
	return func(c *AssemblyAI) { c.pollInterval = d }
}

// NewAssemblyAI creates an AssemblyAI transcription client.
func NewAssemblyAI(apiKey string, opts ...Option) *AssemblyAI {
	c := &AssemblyAI{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
		pollInterval: defaultPollInterval,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Transcribe uploads the audio, submits a transcript job, and polls until the
// provider reports completion. Cancellation and deadlines flow through ctx.
func (c *AssemblyAI) Transcribe(ctx context.Context, audio []byte) (string, error) {
	uploadURL, err := c.upload(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}

	jobID, err := c.submit(ctx, uploadURL)
	if err != nil {
		return "", fmt.Errorf("assemblyai submit transcript: %w", err)
	}

	text, err := c.poll(ctx, jobID)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcript %s: %w", jobID, err)
	}
	return text, nil
}

func (c *AssemblyAI) upload(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/upload", bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var out uploadResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.UploadURL == "" {
		return "", fmt.Errorf("provider returned no upload_url")
	}
	return out.UploadURL, nil
}

func (c *AssemblyAI) submit(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(transcriptRequest{AudioURL: audioURL})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transcript", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var out transcriptResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("provider returned no transcript id")
	}
	return out.ID, nil
}

func (c *AssemblyAI) poll(ctx context.Context, jobID string) (string, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/transcript/"+jobID, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Authorization", c.apiKey)

		var out transcriptResponse
		if err := c.do(req, &out); err != nil {
			return "", err
		}

		switch out.Status {
		case "completed":
			return out.Text, nil
		case "error":
			return "", fmt.Errorf("provider reported transcription error: %s", out.Error)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *AssemblyAI) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
