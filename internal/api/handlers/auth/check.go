package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
)

// CheckHandler reports the authorization state of the caller's session
type CheckHandler struct {
	store sessions.Store
}

// NewCheckHandler creates a new check handler
func NewCheckHandler(store sessions.Store) *CheckHandler {
	return &CheckHandler{store: store}
}

type checkResponse struct {
	Logged bool `json:"logged"`
}

// HandleCheck handles GET /auth/check
// Always answers 200; a missing or expired session reads as logged out.
func (h *CheckHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(checkResponse{
		Logged: middleware.IsLogged(h.store, r),
	}); err != nil {
		log.Printf("Failed to encode check response: %v", err)
	}
}
