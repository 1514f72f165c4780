package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/voxlabs/voxrelay/internal/session"
)

const defaultModel = "gemini-1.5-flash-latest"

// Gemini implements Generator for the Google Gemini API via the
// google.golang.org/genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
	system string
}

// Interface compliance check.
var _ Generator = (*Gemini)(nil)

// GeminiOption configures a Gemini client.
type GeminiOption func(*Gemini)

// WithModel sets the model ID. Default is gemini-1.5-flash-latest.
func WithModel(model string) GeminiOption {
	return func(g *Gemini) { g.model = model }
}

// WithSystemPrompt sets an optional system instruction for every request.
func WithSystemPrompt(prompt string) GeminiOption {
	return func(g *Gemini) { g.system = prompt }
}

// NewGemini creates a Gemini generation client with the given API key.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	g := &Gemini{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Generate sends the full transcript to the model and returns the reply text.
func (g *Gemini) Generate(ctx context.Context, transcript session.Transcript) (string, error) {
	contents := ConvertTranscript(transcript)
	if len(contents) == 0 {
		return "", fmt.Errorf("gemini: transcript is empty")
	}

	var config *genai.GenerateContentConfig
	if g.system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: g.system}},
			},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: response contained no text")
	}
	return text, nil
}

// ConvertTranscript converts a transcript to genai Contents.
// Exported for testing.
func ConvertTranscript(transcript session.Transcript) []*genai.Content {
	var result []*genai.Content
	for _, turn := range transcript {
		role := "user"
		if turn.Role == session.RoleModel {
			role = "model"
		}
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, &genai.Part{Text: p})
		}
		result = append(result, &genai.Content{Role: role, Parts: parts})
	}
	return result
}
