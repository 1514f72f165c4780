package agent

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// defaultMaxUploadSize bounds the multipart audio upload body (25MB).
const defaultMaxUploadSize = 25 << 20

// Handler exposes the relay's conversation endpoints over HTTP.
type Handler struct {
	svc           *Service
	fallbackAudio []byte
	tempDir       string
	maxUploadSize int64
}

// NewHandler creates the conversation handler. fallbackAudio is the
// pre-recorded MP3 served whenever the pipeline fails; tempDir receives the
// spooled uploads and must exist.
func NewHandler(svc *Service, fallbackAudio []byte, tempDir string) *Handler {
	return &Handler{
		svc:           svc,
		fallbackAudio: fallbackAudio,
		tempDir:       tempDir,
		maxUploadSize: defaultMaxUploadSize,
	}
}

// RegisterRoutes registers the conversation endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/agent/chat/{sessionID}", h.HandleChat)
	r.Post("/agent/chat/{sessionID}/end", h.HandleEndChat)
	r.Post("/generate-audio", h.HandleGenerateAudio)
}

// HandleChat handles POST /agent/chat/{sessionID}: one full conversational
// turn. Success returns JSON; any pipeline failure returns playable fallback
// audio instead of an error page, so voice clients always have something to
// play.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	file, header, err := r.FormFile("audio_data")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio_data file is required")
		return
	}
	defer file.Close()

	audio, err := h.spoolUpload(sessionID, file, header.Filename)
	if err != nil {
		slog.Error("Failed to spool audio upload", "session_id", sessionID, "error", err)
		h.writeFallback(w, sessionID, err)
		return
	}

	result, err := h.svc.RunTurn(r.Context(), sessionID, audio)
	if err != nil {
		h.writeFallback(w, sessionID, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// spoolUpload copies the multipart file to a uniquely named temp file, reads
// it back, and removes it. The temp file is removed even when reading fails.
func (h *Handler) spoolUpload(sessionID string, file io.Reader, filename string) ([]byte, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".webm"
	}
	path := filepath.Join(h.tempDir, uuid.NewString()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if removeErr := os.Remove(path); removeErr != nil {
			slog.Warn("Failed to clean up temp audio file", "path", path, "error", removeErr)
		} else {
			slog.Debug("Cleaned up temp audio file", "session_id", sessionID, "path", path)
		}
	}()

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		return nil, err
	}
	if err := dst.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (h *Handler) writeFallback(w http.ResponseWriter, sessionID string, err error) {
	slog.Error("Pipeline failed, serving fallback audio", "session_id", sessionID, "error", err)
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("X-Error-Type", "Fallback-Audio")
	w.WriteHeader(http.StatusOK)
	if _, writeErr := w.Write(h.fallbackAudio); writeErr != nil {
		slog.Warn("Failed to write fallback audio", "session_id", sessionID, "error", writeErr)
	}
}

// HandleEndChat handles POST /agent/chat/{sessionID}/end.
func (h *Handler) HandleEndChat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	message := "No active session found to end."
	if h.svc.EndSession(sessionID) {
		message = "Conversation ended and history cleared."
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// HandleGenerateAudio handles POST /generate-audio: single-shot synthesis
// with no fallback contract, so provider errors surface directly.
func (h *Handler) HandleGenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req GenerateAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	audioURL, err := h.svc.GenerateAudio(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, ErrTextRequired) {
			writeError(w, http.StatusBadRequest, ErrTextRequired.Error())
			return
		}
		slog.Error("Audio generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, GenerateAudioResponse{AudioURL: audioURL})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
