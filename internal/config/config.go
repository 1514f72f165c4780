// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string

	// Provider credentials. AssemblyAI and Murf are required; an absent
	// Gemini key puts the service in degraded mode where every chat turn
	// falls back.
	AssemblyAIKey string
	GeminiAPIKey  string
	MurfAPIKey    string

	GeminiModel string
	MurfVoiceID string

	FallbackAudioPath string
	TempAudioDir      string
	RecordingsDir     string

	TranscribeTimeout time.Duration
	GenerateTimeout   time.Duration
	SynthesizeTimeout time.Duration

	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		FrontendURL:       getEnv("FRONTEND_URL", ""),
		AssemblyAIKey:     getEnv("ASSEMBLYAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		MurfAPIKey:        getEnv("MURF_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		MurfVoiceID:       getEnv("MURF_VOICE_ID", "en-IN-aarav"),
		FallbackAudioPath: getEnv("FALLBACK_AUDIO_PATH", "./assets/error_response.mp3"),
		TempAudioDir:      getEnv("TEMP_AUDIO_DIR", "./temp_audio"),
		RecordingsDir:     getEnv("RECORDINGS_DIR", "./recordings"),
		TranscribeTimeout: getEnvDuration("TRANSCRIBE_TIMEOUT", 75*time.Second),
		GenerateTimeout:   getEnvDuration("GENERATE_TIMEOUT", 60*time.Second),
		SynthesizeTimeout: getEnvDuration("SYNTHESIZE_TIMEOUT", 30*time.Second),
		OTLPEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.AssemblyAIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if c.MurfAPIKey == "" {
		return fmt.Errorf("MURF_API_KEY is required")
	}
	if c.FallbackAudioPath == "" {
		return fmt.Errorf("FALLBACK_AUDIO_PATH cannot be empty")
	}
	if c.TempAudioDir == "" {
		return fmt.Errorf("TEMP_AUDIO_DIR cannot be empty")
	}
	if c.RecordingsDir == "" {
		return fmt.Errorf("RECORDINGS_DIR cannot be empty")
	}
	if c.TranscribeTimeout <= 0 || c.GenerateTimeout <= 0 || c.SynthesizeTimeout <= 0 {
		return fmt.Errorf("gateway timeouts must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env == "development"
	}
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	// Accept either a Go duration ("45s") or a bare number of seconds.
	if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
