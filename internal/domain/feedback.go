package domain

import (
	"context"
	"time"
)

// Feedback represents a user rating and/or comment tied to a session id.
// The session reference is intentionally not validated against
// chat_sessions; dangling references are allowed.
type Feedback struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Rating    *int      `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackFilter narrows a feedback listing. Zero values mean no filter.
type FeedbackFilter struct {
	Rating int
	// Date matches the calendar-date portion of created_at (YYYY-MM-DD).
	Date string
}

// FeedbackStats aggregates the feedback table
type FeedbackStats struct {
	TotalCount         int         `json:"total_feedback"`
	AverageRating      float64     `json:"average_rating"`
	CommentCount       int         `json:"comments_count"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// FeedbackRepository defines the interface for feedback storage
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *Feedback) error
	List(ctx context.Context, filter FeedbackFilter) ([]Feedback, error)
	Stats(ctx context.Context) (*FeedbackStats, error)
}
