package session

import (
	"fmt"
	"sync"
	"testing"
)

func TestGetUnseenSessionReturnsEmptyTranscript(t *testing.T) {
	s := NewMemoryStore()

	if got := s.Get("never-seen"); len(got) != 0 {
		t.Fatalf("expected empty transcript, got %d turns", len(got))
	}
}

func TestClearUnseenSessionReturnsFalse(t *testing.T) {
	s := NewMemoryStore()

	if s.Clear("never-seen") {
		t.Fatal("expected Clear to report no session")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	s.Append("sess", RoleUser, "hello")

	if !s.Clear("sess") {
		t.Fatal("expected first Clear to report an existing session")
	}
	if s.Clear("sess") {
		t.Fatal("expected second Clear to report no session")
	}
}

func TestTranscriptAlternatesAcrossTurns(t *testing.T) {
	s := NewMemoryStore()
	const turns = 5

	for i := 0; i < turns; i++ {
		s.Append("sess", RoleUser, fmt.Sprintf("question %d", i))
		s.Append("sess", RoleModel, fmt.Sprintf("answer %d", i))
	}

	transcript := s.Get("sess")
	if len(transcript) != 2*turns {
		t.Fatalf("expected %d turns, got %d", 2*turns, len(transcript))
	}
	for i, turn := range transcript {
		want := RoleUser
		if i%2 == 1 {
			want = RoleModel
		}
		if turn.Role != want {
			t.Fatalf("turn %d: expected role %q, got %q", i, want, turn.Role)
		}
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.Append("sess", RoleUser, "hello")

	snapshot := s.Get("sess")
	s.Append("sess", RoleModel, "hi there")

	if len(snapshot) != 1 {
		t.Fatalf("snapshot mutated by later append: %d turns", len(snapshot))
	}
	if got := s.Get("sess"); len(got) != 2 {
		t.Fatalf("expected 2 stored turns, got %d", len(got))
	}
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	s := NewMemoryStore()
	const sessions = 8
	const appendsPerSession = 50

	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < appendsPerSession; j++ {
				s.Append(id, RoleUser, "x")
			}
		}(fmt.Sprintf("sess-%d", i))
	}
	wg.Wait()

	for i := 0; i < sessions; i++ {
		id := fmt.Sprintf("sess-%d", i)
		if got := len(s.Get(id)); got != appendsPerSession {
			t.Fatalf("session %s: expected %d turns, got %d", id, appendsPerSession, got)
		}
	}
}

func TestTurnText(t *testing.T) {
	tests := []struct {
		name string
		turn Turn
		want string
	}{
		{"single part", Turn{Role: RoleUser, Parts: []string{"hello"}}, "hello"},
		{"multiple parts", Turn{Role: RoleModel, Parts: []string{"a", "b"}}, "a b"},
		{"no parts", Turn{Role: RoleUser}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.turn.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
