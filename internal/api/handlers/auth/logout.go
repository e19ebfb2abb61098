package auth

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
)

// LogoutHandler clears the admin session
type LogoutHandler struct {
	store sessions.Store
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(store sessions.Store) *LogoutHandler {
	return &LogoutHandler{store: store}
}

// HandleLogout handles POST /auth/logout
// Drops all session state and expires the cookie. Logging out without being
// logged in is fine.
func (h *LogoutHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, middleware.SessionName)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1 // Delete cookie
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to clear session: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
