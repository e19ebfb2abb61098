package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
)

// LoginGate guards mutating post routes behind the admin session.
// It only inspects the session; it never modifies it.
type LoginGate struct {
	store sessions.Store
}

// NewLoginGate creates a new login gate backed by the given session store.
func NewLoginGate(store sessions.Store) *LoginGate {
	return &LoginGate{store: store}
}

// RequireLogin rejects requests whose session does not carry logged=true.
// Authenticated requests pass through unchanged.
func (g *LoginGate) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsLogged(g.store, r) {
			writeAuthError(w, "Login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeAuthError writes a 401 response with a JSON error body
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "Unauthorized",
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode auth error response: %v", err)
	}
}
