package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"Quill/internal/api/handlers/auth"
	"Quill/internal/core/admin"
)

// RegisterAuthRoutes registers the session endpoints on the router.
// None of them require authentication themselves.
func RegisterAuthRoutes(r chi.Router, service *admin.Service, store sessions.Store) {
	loginHandler := auth.NewLoginHandler(service, store)
	checkHandler := auth.NewCheckHandler(store)
	logoutHandler := auth.NewLogoutHandler(store)

	r.Post("/auth/login", loginHandler.HandleLogin)
	r.Get("/auth/check", checkHandler.HandleCheck)
	r.Post("/auth/logout", logoutHandler.HandleLogout)
}
