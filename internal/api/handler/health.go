package handler

import (
	"net/http"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/response"
)

// Root returns the service banner
func Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"message": "AI Copilot backend is running.",
	})
}

// Health returns a simple liveness response
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}
