package post

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Quill/internal/core/posts"
)

type errorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message"`
	Fields  []posts.FieldError `json:"fields,omitempty"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *posts.ValidationError

	switch {
	case errors.As(err, &valErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if encErr := json.NewEncoder(w).Encode(errorResponse{
			Error:   "ValidationFailed",
			Message: valErr.Error(),
			Fields:  valErr.Fields,
		}); encErr != nil {
			log.Printf("Failed to encode validation error response: %v", encErr)
		}

	case errors.Is(err, posts.ErrInvalidPage):
		// Out-of-range page numbers answer with a bare 400, no body
		w.WriteHeader(http.StatusBadRequest)

	case errors.Is(err, posts.ErrNotFound):
		// Bare 404, no body
		w.WriteHeader(http.StatusNotFound)

	default:
		// Storage and other unexpected failures; don't leak internals
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
