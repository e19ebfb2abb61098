package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
	"Quill/internal/core/admin"
)

// LoginHandler handles admin login requests
type LoginHandler struct {
	service *admin.Service
	store   sessions.Store
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service *admin.Service, store sessions.Store) *LoginHandler {
	return &LoginHandler{
		service: service,
		store:   store,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool `json:"success"`
}

// HandleLogin handles POST /auth/login
// On a password match the session is marked logged in; on a mismatch the
// session is left untouched.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if !h.service.Login(req.Password) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if err := json.NewEncoder(w).Encode(loginResponse{Success: false}); err != nil {
			log.Printf("Failed to encode login response: %v", err)
		}
		return
	}

	// Get returns a usable fresh session even when an old cookie fails to
	// decode, so the error is deliberately ignored.
	session, _ := h.store.Get(r, middleware.SessionName)
	session.Values[middleware.LoggedKey] = true
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save session: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{Success: true}); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
}
