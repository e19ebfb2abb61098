package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Quill/internal/core/posts"
)

// DeleteHandler handles post removal requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /posts/{id}
// Removal is idempotent: deleting a post that no longer exists still answers
// 204.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
