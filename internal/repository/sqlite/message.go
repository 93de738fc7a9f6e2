package sqlite

import (
	"context"
	"fmt"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
)

// MessageRepository implements domain.MessageRepository
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message and fills in its assigned id
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO chat_messages (session_id, message, sender, timestamp)
		VALUES (?, ?, ?, ?)
	`
	res, err := r.db.SQL.ExecContext(ctx, query,
		message.SessionID,
		message.Body,
		string(message.Sender),
		formatTime(message.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read message id: %w", err)
	}
	message.ID = id
	return nil
}

// ListBySession retrieves messages for a session in chronological order
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Message, error) {
	query := `
		SELECT id, session_id, message, sender, timestamp
		FROM chat_messages
		WHERE session_id = ?
		ORDER BY timestamp ASC
	`
	rows, err := r.db.SQL.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		var sender, timestamp string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Body, &sender, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Sender = domain.Sender(sender)
		m.Timestamp = parseTime(timestamp)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteBySession removes all messages for a session, returning the count
func (r *MessageRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.db.SQL.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear messages: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
