package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/notify"
	"github.com/rs/zerolog/log"
)

// FeedbackService handles feedback submission, listing, aggregation and
// CSV export.
type FeedbackService struct {
	feedbackRepo domain.FeedbackRepository
	notifier     notify.Notifier
	exportDir    string
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(
	feedbackRepo domain.FeedbackRepository,
	notifier notify.Notifier,
	exportDir string,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		notifier:     notifier,
		exportDir:    exportDir,
	}
}

// Submit records a feedback entry and kicks off the best-effort admin
// notification. The session reference is taken as-is, whether or not such
// a session exists.
func (s *FeedbackService) Submit(ctx context.Context, sessionID string, rating *int, comment string) error {
	feedback := &domain.Feedback{
		SessionID: sessionID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return err
	}

	s.notifier.FeedbackReceived(sessionID, rating, comment)
	log.Info().Str("session_id", sessionID).Msg("Feedback submitted")
	return nil
}

// List returns feedback newest first, optionally filtered
func (s *FeedbackService) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, error) {
	return s.feedbackRepo.List(ctx, filter)
}

// Stats aggregates the feedback table
func (s *FeedbackService) Stats(ctx context.Context) (*domain.FeedbackStats, error) {
	return s.feedbackRepo.Stats(ctx)
}

// ExportCSV writes all feedback rows, newest first, to a timestamped file
// under the export directory and returns its path and row count.
func (s *FeedbackService) ExportCSV(ctx context.Context) (string, int, error) {
	feedbacks, err := s.feedbackRepo.List(ctx, domain.FeedbackFilter{})
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("feedback_export_%s.csv", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.exportDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ID", "Session ID", "Rating", "Comment", "Created At"}); err != nil {
		return "", 0, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, fb := range feedbacks {
		rating := ""
		if fb.Rating != nil {
			rating = strconv.Itoa(*fb.Rating)
		}
		row := []string{
			strconv.FormatInt(fb.ID, 10),
			fb.SessionID,
			rating,
			fb.Comment,
			fb.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
		if err := w.Write(row); err != nil {
			return "", 0, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", 0, fmt.Errorf("failed to flush export file: %w", err)
	}

	log.Info().Str("file", path).Int("records", len(feedbacks)).Msg("Feedback exported")
	return path, len(feedbacks), nil
}
