package domain

import (
	"context"
	"time"
)

// Sender identifies which side of the conversation wrote a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message represents a single chat message within a session
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Body      string    `json:"message"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// ListBySession returns all messages for a session in chronological
	// order. Unknown sessions yield an empty slice, not an error.
	ListBySession(ctx context.Context, sessionID string) ([]Message, error)
	// DeleteBySession removes all messages for a session and returns the
	// number of rows deleted.
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
}
