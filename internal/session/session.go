// Package session holds per-session conversation state for the relay.
//
// Sessions live for the lifetime of the process only. A session is created
// lazily the first time its id is referenced and removed explicitly when the
// caller ends the conversation.
package session

import "strings"

// Role identifies who produced a turn.
type Role string

const (
	// RoleUser marks a transcribed user utterance.
	RoleUser Role = "user"
	// RoleModel marks a model reply.
	RoleModel Role = "model"
)

// Turn is a single utterance in a conversation: a role plus one or more text
// parts (in practice exactly one). Turns are immutable once appended to a
// transcript.
type Turn struct {
	Role  Role
	Parts []string
}

// Text returns the turn's parts joined into a single string.
func (t Turn) Text() string {
	if len(t.Parts) == 1 {
		return t.Parts[0]
	}
	return strings.Join(t.Parts, " ")
}

// Transcript is the ordered history of turns for a session. Successful turns
// alternate strictly user/model.
type Transcript []Turn
