package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound is returned when an operation targets a session
	// that does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateSession is returned when a generated session id collides
	// with an existing row.
	ErrDuplicateSession = errors.New("session id already exists")
)

// ChatSession represents a conversation thread identified by an opaque id
type ChatSession struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionSummary is a session row joined with its message count
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *ChatSession) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	// Delete removes the session and all of its messages atomically.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, sessionID string) error
	// List returns all sessions with message counts, newest first.
	List(ctx context.Context) ([]SessionSummary, error)
}
