package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/response"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/metrics"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/service"
	"github.com/rs/zerolog/log"
)

// FeedbackHandler handles feedback endpoints
type FeedbackHandler struct {
	feedback *service.FeedbackService
	metrics  *metrics.Metrics
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedback *service.FeedbackService, m *metrics.Metrics) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, metrics: m}
}

type feedbackRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Rating    *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Submit records a feedback entry. The session id is not checked against
// existing sessions.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.feedback.Submit(r.Context(), input.SessionID, input.Rating, input.Comment); err != nil {
		log.Error().Err(err).Msg("Failed to submit feedback")
		response.InternalError(w, "Error submitting feedback")
		return
	}

	h.metrics.FeedbackSubmissions.Inc()
	response.OK(w, map[string]string{
		"status":  "success",
		"message": "Feedback submitted successfully",
	})
}

// View lists feedback, optionally filtered by rating and calendar date
func (h *FeedbackHandler) View(w http.ResponseWriter, r *http.Request) {
	filter := domain.FeedbackFilter{}

	if raw := r.URL.Query().Get("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "invalid rating filter")
			return
		}
		filter.Rating = rating
	}
	filter.Date = r.URL.Query().Get("date")

	feedbacks, err := h.feedback.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list feedback")
		response.InternalError(w, "Failed to retrieve feedback")
		return
	}
	response.OK(w, feedbacks)
}

// Export dumps all feedback to a timestamped CSV file on disk
func (h *FeedbackHandler) Export(w http.ResponseWriter, r *http.Request) {
	path, records, err := h.feedback.ExportCSV(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to export feedback")
		response.InternalError(w, "Failed to export feedback")
		return
	}

	response.OK(w, map[string]any{
		"status":  "success",
		"file":    path,
		"records": records,
	})
}

// Stats returns aggregate feedback statistics
func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.feedback.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute feedback stats")
		response.InternalError(w, "Error retrieving feedback statistics")
		return
	}
	response.OK(w, stats)
}
