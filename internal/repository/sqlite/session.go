package sqlite

import (
	"context"
	"fmt"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
)

// SessionRepository implements domain.SessionRepository
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.ChatSession) error {
	query := `INSERT INTO chat_sessions (session_id, created_at) VALUES (?, ?)`
	_, err := r.db.SQL.ExecContext(ctx, query, session.SessionID, formatTime(session.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSession
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	query := `SELECT COUNT(*) FROM chat_sessions WHERE session_id = ?`
	var count int
	if err := r.db.SQL.QueryRowContext(ctx, query, sessionID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check session existence: %w", err)
	}
	return count > 0, nil
}

// Delete removes the session's messages and then the session row in one
// transaction so a crash cannot leave orphaned messages behind.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session messages: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session delete: %w", err)
	}
	return nil
}

func (r *SessionRepository) List(ctx context.Context) ([]domain.SessionSummary, error) {
	query := `
		SELECT cs.session_id, cs.created_at, COUNT(cm.id) AS message_count
		FROM chat_sessions cs
		LEFT JOIN chat_messages cm ON cs.session_id = cm.session_id
		GROUP BY cs.session_id, cs.created_at
		ORDER BY cs.created_at DESC
	`
	rows, err := r.db.SQL.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	summaries := []domain.SessionSummary{}
	for rows.Next() {
		var s domain.SessionSummary
		var createdAt string
		if err := rows.Scan(&s.SessionID, &createdAt, &s.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
