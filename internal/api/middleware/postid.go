package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Quill/internal/core/posts"
)

// RequirePostID rejects requests whose {id} route parameter is not a
// structurally valid post identifier, before any storage call is made.
// Without this check a malformed identifier would surface as a low-level
// storage error instead of a 400.
func RequirePostID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !posts.ValidID(chi.URLParam(r, "id")) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}
