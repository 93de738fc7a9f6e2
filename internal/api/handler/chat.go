package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/response"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/faq"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/metrics"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	chat    *service.ChatService
	metrics *metrics.Metrics
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService, m *metrics.Metrics) *ChatHandler {
	return &ChatHandler{chat: chat, metrics: m}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// Chat handles one chat turn
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var input chatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		response.BadRequest(w, "Message is required")
		return
	}

	reply, sessionID, err := h.chat.Chat(r.Context(), message, input.SessionID)
	if err != nil {
		log.Error().Err(err).Msg("Chat turn failed")
		response.InternalError(w, "Internal server error")
		return
	}

	h.metrics.ChatTurns.Inc()
	if isFallback(reply) {
		h.metrics.FAQFallbacks.Inc()
	}

	response.OK(w, chatResponse{Reply: reply, SessionID: sessionID})
}

func isFallback(reply string) bool {
	switch reply {
	case faq.FallbackUnavailable, faq.FallbackNoMatch, faq.FallbackError, service.FallbackNoReply:
		return true
	}
	return false
}

type messageHistory struct {
	Message   string `json:"message"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type historyResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []messageHistory `json:"messages"`
}

// History returns the chat history for a session. Unknown sessions get an
// empty list rather than an error.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chat.History(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to fetch chat history")
		messages = []domain.Message{}
	}

	out := historyResponse{SessionID: sessionID, Messages: make([]messageHistory, 0, len(messages))}
	for _, m := range messages {
		out.Messages = append(out.Messages, messageHistory{
			Message:   m.Body,
			Sender:    string(m.Sender),
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}
	response.OK(w, out)
}

// NewSession creates a new chat session
func (h *ChatHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.chat.CreateSession(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		response.InternalError(w, "Failed to create session")
		return
	}
	response.OK(w, map[string]string{"session_id": sessionID})
}

// Clear wipes a session's messages, leaving the session itself
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	deleted, found, err := h.chat.ClearMessages(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear messages")
		response.InternalError(w, "Internal server error while clearing chat history")
		return
	}
	if !found {
		response.OK(w, map[string]any{
			"status":  "success",
			"message": "Session not found, nothing to clear.",
		})
		return
	}

	response.OK(w, map[string]any{
		"status":        "success",
		"message":       fmt.Sprintf("Successfully cleared %d messages.", deleted),
		"deleted_count": deleted,
	})
}

// Sessions lists all sessions with message counts
func (h *ChatHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chat.ListSessions(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sessions")
		response.InternalError(w, "Failed to retrieve sessions")
		return
	}
	response.OK(w, sessions)
}

// DeleteSession removes a session and all its messages
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chat.DeleteSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "Session not found")
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to delete session")
		response.InternalError(w, "Failed to delete session")
		return
	}

	response.OK(w, map[string]string{
		"status":  "success",
		"message": "Session deleted successfully",
	})
}
