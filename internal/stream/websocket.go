// Package stream provides the WebSocket transport experiment: a duplex
// channel that echoes text frames and captures streamed audio to disk.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// echoPrefix is the fixed label prepended to every echoed text frame.
const echoPrefix = "Echo: "

// Handler upgrades /ws requests and runs the duplex loop until the client
// disconnects. Disconnect is normal termination, not an error.
type Handler struct {
	recordingsDir string
	allowedOrigin string
	isDev         bool
}

// NewHandler creates a WebSocket stream handler. Binary frames received on a
// connection are appended to a per-connection recording file under
// recordingsDir.
func NewHandler(recordingsDir, allowedOrigin string, isDev bool) *Handler {
	return &Handler{
		recordingsDir: recordingsDir,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "stream ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	slog.Info("WebSocket connection established", "ip", r.RemoteAddr)
	h.streamLoop(r.Context(), ws)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "" || h.allowedOrigin == "*" {
		return true
	}
	if origin == h.allowedOrigin {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

// streamLoop reads frames until the client disconnects: text frames are
// echoed back with the fixed label, binary frames are appended to the
// connection's recording file.
func (h *Handler) streamLoop(ctx context.Context, ws *websocket.Conn) {
	var (
		recording *os.File
		path      string
	)
	defer func() {
		if recording == nil {
			return
		}
		if err := recording.Close(); err != nil {
			slog.Warn("Failed to close recording file", "path", path, "error", err)
			return
		}
		slog.Info("Audio stream saved", "path", path)
	}()

	for {
		typ, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 || ctx.Err() != nil {
				slog.Info("WebSocket connection closed by client")
			} else {
				slog.Warn("WebSocket read error", "error", err)
			}
			return
		}

		switch typ {
		case websocket.MessageText:
			if err := ws.Write(ctx, websocket.MessageText, []byte(echoPrefix+string(data))); err != nil {
				slog.Warn("WebSocket echo write error", "error", err)
				return
			}
		case websocket.MessageBinary:
			if recording == nil {
				path = filepath.Join(h.recordingsDir, fmt.Sprintf("stream_%s.webm", uuid.NewString()))
				recording, err = os.Create(path)
				if err != nil {
					slog.Error("Failed to create recording file", "path", path, "error", err)
					return
				}
				slog.Info("Started saving audio stream", "path", path)
			}
			if _, err := recording.Write(data); err != nil {
				slog.Error("Failed to write audio frame", "path", path, "error", err)
				return
			}
		}
	}
}
