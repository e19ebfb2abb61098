package post

import (
	"encoding/json"
	"log"
	"net/http"

	"Quill/internal/core/posts"
)

// SearchHandler handles full-text post search requests
type SearchHandler struct {
	service posts.Service
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service posts.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

type searchResponse struct {
	Posts []*posts.Post `json:"posts"`
	Total int           `json:"total"`
}

// HandleSearch handles GET /posts/search?q=<query>
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "q parameter is required")
		return
	}

	matches, err := h.service.Search(r.Context(), query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(searchResponse{
		Posts: matches,
		Total: len(matches),
	}); err != nil {
		log.Printf("Failed to encode search response: %v", err)
	}
}
