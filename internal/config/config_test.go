package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredKeys(t *testing.T) {
	t.Helper()
	t.Setenv("ASSEMBLYAI_API_KEY", "aai-test")
	t.Setenv("MURF_API_KEY", "murf-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredKeys(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-1.5-flash-latest" {
		t.Errorf("unexpected default model %q", cfg.GeminiModel)
	}
	if cfg.MurfVoiceID != "en-IN-aarav" {
		t.Errorf("unexpected default voice %q", cfg.MurfVoiceID)
	}
	if cfg.TranscribeTimeout != 75*time.Second {
		t.Errorf("unexpected default transcribe timeout %v", cfg.TranscribeTimeout)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("expected empty gemini key by default, got %q", cfg.GeminiAPIKey)
	}
}

func TestLoadMissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		want  string
	}{
		{"missing assemblyai", "ASSEMBLYAI_API_KEY", "ASSEMBLYAI_API_KEY"},
		{"missing murf", "MURF_API_KEY", "MURF_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredKeys(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error naming %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingGeminiKeyIsTolerated(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err != nil {
		t.Fatalf("expected degraded-mode load to succeed, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("MURF_VOICE_ID", "en-US-ken")
	t.Setenv("TRANSCRIBE_TIMEOUT", "90s")
	t.Setenv("GENERATE_TIMEOUT", "45")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("expected model override, got %q", cfg.GeminiModel)
	}
	if cfg.MurfVoiceID != "en-US-ken" {
		t.Errorf("expected voice override, got %q", cfg.MurfVoiceID)
	}
	if cfg.TranscribeTimeout != 90*time.Second {
		t.Errorf("expected duration override, got %v", cfg.TranscribeTimeout)
	}
	if cfg.GenerateTimeout != 45*time.Second {
		t.Errorf("expected bare-seconds override, got %v", cfg.GenerateTimeout)
	}
}

func TestIsDevelopment(t *testing.T) {
	setRequiredKeys(t)
	tests := []struct {
		name        string
		frontendURL string
		want        bool
	}{
		{"no frontend url", "", true},
		{"localhost", "http://localhost:5173", true},
		{"production", "https://voice.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{FrontendURL: tt.frontendURL}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}
