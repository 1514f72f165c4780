// VoxRelay - voice conversation relay server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/voxlabs/voxrelay/internal/agent"
	"github.com/voxlabs/voxrelay/internal/config"
	"github.com/voxlabs/voxrelay/internal/llm"
	"github.com/voxlabs/voxrelay/internal/middleware"
	"github.com/voxlabs/voxrelay/internal/session"
	"github.com/voxlabs/voxrelay/internal/stream"
	"github.com/voxlabs/voxrelay/internal/stt"
	"github.com/voxlabs/voxrelay/internal/telemetry"
	"github.com/voxlabs/voxrelay/internal/tts"
	"github.com/voxlabs/voxrelay/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// The fallback clip is the last line of defense for the chat endpoint, so
	// refuse to start without it.
	fallbackAudio, err := os.ReadFile(cfg.FallbackAudioPath)
	if err != nil {
		slog.Error("Failed to read fallback audio", "path", cfg.FallbackAudioPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Fallback audio loaded", "path", cfg.FallbackAudioPath, "bytes", len(fallbackAudio))

	for _, dir := range []string{cfg.TempAudioDir, cfg.RecordingsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("Failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	telemetryShutdown, metricsHandler, err := telemetry.Setup(cfg, logger)
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetryShutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down telemetry", "error", err)
		}
	}()

	// Initialize dependencies.
	sessions := session.NewMemoryStore()
	transcriber := stt.NewAssemblyAI(cfg.AssemblyAIKey)
	synthesizer := tts.NewMurf(cfg.MurfAPIKey, tts.WithVoiceID(cfg.MurfVoiceID))

	// An absent Gemini key keeps the server up in degraded mode: every chat
	// turn serves the fallback clip until the key is provided.
	var generator llm.Generator
	if cfg.GeminiAPIKey != "" {
		generator, err = llm.NewGemini(context.Background(), cfg.GeminiAPIKey, llm.WithModel(cfg.GeminiModel))
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		slog.Info("Gemini client initialized", "model", cfg.GeminiModel)
	} else {
		generator = llm.NewDisabled()
		slog.Warn("GEMINI_API_KEY not set, AI replies disabled; all chat turns will serve fallback audio")
	}

	svc := agent.NewService(transcriber, generator, synthesizer, sessions, agent.Timeouts{
		Transcribe: cfg.TranscribeTimeout,
		Generate:   cfg.GenerateTimeout,
		Synthesize: cfg.SynthesizeTimeout,
	})
	agentHandler := agent.NewHandler(svc, fallbackAudio, cfg.TempAudioDir)
	wsHandler := stream.NewHandler(cfg.RecordingsDir, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	agentHandler.RegisterRoutes(r)

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	// WebSocket endpoint.
	r.Get("/ws", wsHandler.ServeHTTP)

	// Serve embedded voice client (catch-all).
	r.Handle("/*", web.Handler())

	// Note: chat turns hold the connection through three provider round
	// trips, so the write timeout stays disabled.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
