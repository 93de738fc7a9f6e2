package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
)

// FeedbackRepository implements domain.FeedbackRepository
type FeedbackRepository struct {
	db *DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback record. The session reference is not checked
// against chat_sessions.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	query := `
		INSERT INTO feedback (session_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?)
	`
	var rating sql.NullInt64
	if feedback.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*feedback.Rating), Valid: true}
	}

	res, err := r.db.SQL.ExecContext(ctx, query,
		feedback.SessionID,
		rating,
		feedback.Comment,
		formatTime(feedback.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read feedback id: %w", err)
	}
	feedback.ID = id
	return nil
}

// List returns feedback newest first, optionally filtered by rating and by
// the calendar date of created_at.
func (r *FeedbackRepository) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, error) {
	query := `SELECT id, session_id, rating, comment, created_at FROM feedback WHERE 1=1`
	args := []any{}

	if filter.Rating != 0 {
		query += ` AND rating = ?`
		args = append(args, filter.Rating)
	}
	if filter.Date != "" {
		query += ` AND DATE(created_at) = ?`
		args = append(args, filter.Date)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := []domain.Feedback{}
	for rows.Next() {
		var f domain.Feedback
		var rating sql.NullInt64
		var comment sql.NullString
		var createdAt string
		if err := rows.Scan(&f.ID, &f.SessionID, &rating, &comment, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		if rating.Valid {
			v := int(rating.Int64)
			f.Rating = &v
		}
		f.Comment = comment.String
		f.CreatedAt = parseTime(createdAt)
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, rows.Err()
}

// Stats aggregates the feedback table in a handful of single-statement
// queries, matching the no-transaction behavior of the rest of the store.
func (r *FeedbackRepository) Stats(ctx context.Context) (*domain.FeedbackStats, error) {
	stats := &domain.FeedbackStats{RatingDistribution: map[int]int{}}

	if err := r.db.SQL.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&stats.TotalCount); err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	var avg sql.NullFloat64
	if err := r.db.SQL.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM feedback WHERE rating IS NOT NULL`).Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	if avg.Valid {
		stats.AverageRating = math.Round(avg.Float64*100) / 100
	}

	if err := r.db.SQL.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback WHERE comment IS NOT NULL AND comment != ''`).Scan(&stats.CommentCount); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT rating, COUNT(*) FROM feedback WHERE rating IS NOT NULL GROUP BY rating ORDER BY rating`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating distribution: %w", err)
		}
		stats.RatingDistribution[rating] = count
	}
	return stats, rows.Err()
}
