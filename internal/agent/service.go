package agent

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/voxlabs/voxrelay/internal/llm"
	"github.com/voxlabs/voxrelay/internal/session"
	"github.com/voxlabs/voxrelay/internal/stt"
	"github.com/voxlabs/voxrelay/internal/tts"
)

const instrumentationName = "github.com/voxlabs/voxrelay/internal/agent"

// Service runs conversational turns through the transcribe → generate →
// synthesize pipeline around the session store. One turn is one strictly
// sequential chain of gateway calls; the first failure is terminal for the
// turn and the caller delivers fallback audio instead.
type Service struct {
	transcriber stt.Transcriber
	generator   llm.Generator
	synthesizer tts.Synthesizer
	sessions    session.Store
	timeouts    Timeouts

	tracer        trace.Tracer
	turnsTotal    metric.Int64Counter
	fallbackTotal metric.Int64Counter
}

// NewService creates the turn orchestrator.
func NewService(transcriber stt.Transcriber, generator llm.Generator, synthesizer tts.Synthesizer, sessions session.Store, timeouts Timeouts) *Service {
	s := &Service{
		transcriber: transcriber,
		generator:   generator,
		synthesizer: synthesizer,
		sessions:    sessions,
		timeouts:    timeouts,
		tracer:      otel.Tracer(instrumentationName),
	}

	meter := otel.Meter(instrumentationName)
	var err error
	if s.turnsTotal, err = meter.Int64Counter("voxrelay_turns_total",
		metric.WithDescription("Conversational turns attempted")); err != nil {
		slog.Warn("Failed to create turns counter", "error", err)
	}
	if s.fallbackTotal, err = meter.Int64Counter("voxrelay_fallbacks_total",
		metric.WithDescription("Turns that degraded to fallback audio")); err != nil {
		slog.Warn("Failed to create fallbacks counter", "error", err)
	}
	return s
}

// RunTurn executes one conversational turn for a session. On error the caller
// must deliver the fallback audio; the returned error says why the turn
// degraded but carries no payload.
//
// History is committed only after generation succeeds: a turn that fails in
// transcription or generation leaves the stored transcript untouched, while a
// synthesis failure happens after the commit point and keeps both turns.
func (s *Service) RunTurn(ctx context.Context, sessionID string, audio []byte) (TurnResult, error) {
	ctx, span := s.tracer.Start(ctx, "agent.turn",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()
	s.count(ctx, s.turnsTotal)

	result, err := s.runTurn(ctx, sessionID, audio)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		s.count(ctx, s.fallbackTotal)
		return TurnResult{}, err
	}
	return result, nil
}

func (s *Service) runTurn(ctx context.Context, sessionID string, audio []byte) (TurnResult, error) {
	userText, err := s.transcribe(ctx, audio)
	if err != nil {
		return TurnResult{}, err
	}
	slog.Info("Transcribed user audio", "session_id", sessionID, "chars", len(userText))

	// Working history: stored snapshot plus the new user turn, in memory only
	// until the commit point below.
	history := append(s.sessions.Get(sessionID), session.Turn{
		Role:  session.RoleUser,
		Parts: []string{userText},
	})

	reply, err := s.generate(ctx, history)
	if err != nil {
		return TurnResult{}, err
	}
	slog.Info("Generated model reply", "session_id", sessionID, "chars", len(reply))

	// Commit point: both turns become part of durable history regardless of
	// how synthesis goes.
	s.sessions.Append(sessionID, session.RoleUser, userText)
	s.sessions.Append(sessionID, session.RoleModel, reply)

	audioURL, err := s.synthesize(ctx, ShapeForSpeech(reply))
	if err != nil {
		return TurnResult{}, err
	}
	slog.Info("Synthesized reply audio", "session_id", sessionID, "audio_url", audioURL)

	return TurnResult{
		AudioURL:   audioURL,
		UserQuery:  userText,
		AIResponse: reply,
	}, nil
}

func (s *Service) transcribe(ctx context.Context, audio []byte) (string, error) {
	ctx, span := s.tracer.Start(ctx, "agent.transcribe")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Transcribe)
	defer cancel()

	text, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", providerErr("transcription", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

func (s *Service) generate(ctx context.Context, history session.Transcript) (string, error) {
	ctx, span := s.tracer.Start(ctx, "agent.generate",
		trace.WithAttributes(attribute.Int("history.turns", len(history))))
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generate)
	defer cancel()

	reply, err := s.generator.Generate(ctx, history)
	if err != nil {
		return "", providerErr("generation", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

func (s *Service) synthesize(ctx context.Context, text string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "agent.synthesize",
		trace.WithAttributes(attribute.Int("text.chars", len(text))))
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Synthesize)
	defer cancel()

	url, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return "", providerErr("synthesis", err)
	}
	if strings.TrimSpace(url) == "" {
		return "", ErrNoAudioURL
	}
	return url, nil
}

// EndSession removes a session's transcript and reports whether one existed.
func (s *Service) EndSession(sessionID string) bool {
	ended := s.sessions.Clear(sessionID)
	if ended {
		slog.Info("Chat session ended and history cleared", "session_id", sessionID)
	}
	return ended
}

// GenerateAudio synthesizes arbitrary text outside any session. Unlike chat
// turns it has no fallback contract, so errors propagate to the caller.
func (s *Service) GenerateAudio(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrTextRequired
	}
	return s.synthesize(ctx, text)
}

func (s *Service) count(ctx context.Context, c metric.Int64Counter) {
	if c != nil {
		c.Add(ctx, 1)
	}
}
