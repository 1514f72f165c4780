// Package agent implements the conversation-turn pipeline: one spoken
// utterance in, one spoken reply out, with per-session history in between.
package agent

import "time"

// TurnResult is the success payload of one conversational turn.
type TurnResult struct {
	AudioURL   string `json:"audio_url"`
	UserQuery  string `json:"user_query"`
	AIResponse string `json:"ai_response"`
}

// GenerateAudioRequest is the body of the single-shot synthesis endpoint.
type GenerateAudioRequest struct {
	Text string `json:"text"`
}

// GenerateAudioResponse is the success payload of the single-shot synthesis
// endpoint.
type GenerateAudioResponse struct {
	AudioURL string `json:"audio_url"`
}

// Timeouts bounds each outbound gateway call. A timeout is treated as a
// provider failure.
type Timeouts struct {
	Transcribe time.Duration
	Generate   time.Duration
	Synthesize time.Duration
}

// DefaultTimeouts returns the per-gateway deadlines used when the config
// does not override them. Transcription polls a job queue and needs the most
// headroom.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Transcribe: 75 * time.Second,
		Generate:   60 * time.Second,
		Synthesize: 30 * time.Second,
	}
}
