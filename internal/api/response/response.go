// Package response writes JSON bodies. Payloads are sent raw, not wrapped
// in an envelope; errors use a {"detail": ...} body.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Error sends an error response with a detail message
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, map[string]string{"detail": detail})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, detail string) {
	Error(w, http.StatusUnauthorized, detail)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(w http.ResponseWriter, detail string) {
	Error(w, http.StatusForbidden, detail)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}
