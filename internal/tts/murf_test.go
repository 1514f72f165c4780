package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSynthesizeReturnsAudioURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("api-key"); got != "test-key" {
			t.Errorf("expected api-key header, got %q", got)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["voiceId"] != "en-IN-aarav" {
			t.Errorf("unexpected voiceId %q", req["voiceId"])
		}
		if req["format"] != "mp3" {
			t.Errorf("unexpected format %q", req["format"])
		}
		json.NewEncoder(w).Encode(map[string]string{"audioFile": "https://cdn/x.mp3"})
	}))
	t.Cleanup(srv.Close)

	m := NewMurf("test-key", WithEndpoint(srv.URL))
	url, err := m.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn/x.mp3" {
		t.Fatalf("expected audio URL, got %q", url)
	}
}

func TestSynthesizeMissingAudioFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	t.Cleanup(srv.Close)

	m := NewMurf("test-key", WithEndpoint(srv.URL))
	_, err := m.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no audio file") {
		t.Fatalf("expected missing audio file error, got %v", err)
	}
}

func TestSynthesizeNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessage":"invalid voice"}`, http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	m := NewMurf("test-key", WithEndpoint(srv.URL))
	_, err := m.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestSynthesizeCustomVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["voiceId"] != "en-US-ken" {
			t.Errorf("expected overridden voice, got %q", req["voiceId"])
		}
		json.NewEncoder(w).Encode(map[string]string{"audioFile": "https://cdn/y.mp3"})
	}))
	t.Cleanup(srv.Close)

	m := NewMurf("test-key", WithEndpoint(srv.URL), WithVoiceID("en-US-ken"))
	if _, err := m.Synthesize(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
