package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FallbackNoReply is returned when the matcher produces an empty reply
const FallbackNoReply = "Sorry, I couldn't understand your question. Please try again."

// Answerer produces a reply for a user message. It never fails; on any
// internal problem it returns a fallback string.
type Answerer interface {
	Answer(query string) string
}

// ChatService orchestrates chat turns: session bookkeeping, message
// persistence and answer lookup.
type ChatService struct {
	sessionRepo domain.SessionRepository
	messageRepo domain.MessageRepository
	answerer    Answerer
}

// NewChatService creates a new chat service
func NewChatService(
	sessionRepo domain.SessionRepository,
	messageRepo domain.MessageRepository,
	answerer Answerer,
) *ChatService {
	return &ChatService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		answerer:    answerer,
	}
}

// Chat performs one chat turn. A missing or unknown session id gets a
// fresh session; the user message and the bot reply are both persisted.
func (s *ChatService) Chat(ctx context.Context, message, sessionID string) (string, string, error) {
	if sessionID != "" {
		exists, err := s.sessionRepo.Exists(ctx, sessionID)
		if err != nil {
			return "", "", err
		}
		if !exists {
			sessionID = ""
		}
	}
	if sessionID == "" {
		var err error
		sessionID, err = s.CreateSession(ctx)
		if err != nil {
			return "", "", err
		}
		log.Info().Str("session_id", sessionID).Msg("Created new session for chat")
	}

	if err := s.saveMessage(ctx, sessionID, message, domain.SenderUser); err != nil {
		return "", "", err
	}

	reply := s.answerer.Answer(message)
	if strings.TrimSpace(reply) == "" {
		reply = FallbackNoReply
	}

	if err := s.saveMessage(ctx, sessionID, reply, domain.SenderBot); err != nil {
		return "", "", err
	}

	return reply, sessionID, nil
}

// CreateSession generates a globally unique session id and persists it
func (s *ChatService) CreateSession(ctx context.Context) (string, error) {
	session := &domain.ChatSession{
		SessionID: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return session.SessionID, nil
}

// saveMessage appends a message, creating the session row first if it does
// not exist yet. The exists-then-create pair is not atomic; concurrent
// turns on a brand-new id can race, which is tolerated because ids are
// unique per creation.
func (s *ChatService) saveMessage(ctx context.Context, sessionID, body string, sender domain.Sender) error {
	exists, err := s.sessionRepo.Exists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		session := &domain.ChatSession{SessionID: sessionID, CreatedAt: time.Now().UTC()}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return err
		}
	}

	return s.messageRepo.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Body:      body,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	})
}

// History returns the session's messages in chronological order. Unknown
// sessions yield an empty history.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	exists, err := s.sessionRepo.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []domain.Message{}, nil
	}
	return s.messageRepo.ListBySession(ctx, sessionID)
}

// ClearMessages deletes all messages for a session, leaving the session
// row intact. found reports whether the session existed at all.
func (s *ChatService) ClearMessages(ctx context.Context, sessionID string) (deleted int64, found bool, err error) {
	exists, err := s.sessionRepo.Exists(ctx, sessionID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, nil
	}

	deleted, err = s.messageRepo.DeleteBySession(ctx, sessionID)
	if err != nil {
		return 0, true, err
	}
	return deleted, true, nil
}

// DeleteSession removes a session and its messages. Returns
// domain.ErrSessionNotFound for unknown ids.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// ListSessions returns all sessions with message counts, newest first
func (s *ChatService) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	return s.sessionRepo.List(ctx)
}
