package session

import "sync"

// Store defines the interface for per-session transcript state.
type Store interface {
	// Get returns a snapshot of the transcript for a session. Unseen session
	// ids yield an empty transcript; Get never fails.
	Get(sessionID string) Transcript

	// Append adds one turn to a session's transcript, creating the session on
	// first use.
	Append(sessionID string, role Role, text string)

	// Clear removes a session's transcript. It reports whether the session
	// existed and is idempotent.
	Clear(sessionID string) bool
}

// MemoryStore is a process-wide Store backed by a map. Mutations on the same
// key are atomic with respect to each other; the lock is held only for map
// operations, so in-flight turns on unrelated sessions never block behind it.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Transcript
}

// Interface compliance check.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Transcript),
	}
}

// Get returns a copy of the session's transcript so callers can never observe
// a concurrent append through the snapshot.
func (s *MemoryStore) Get(sessionID string) Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.sessions[sessionID]
	if len(stored) == 0 {
		return nil
	}
	snapshot := make(Transcript, len(stored))
	copy(snapshot, stored)
	return snapshot
}

// Append adds a turn to the session's transcript.
func (s *MemoryStore) Append(sessionID string, role Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], Turn{
		Role:  role,
		Parts: []string{text},
	})
}

// Clear removes the session and reports whether it existed.
func (s *MemoryStore) Clear(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}
