package post

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Quill/internal/core/posts"
)

// ListHandler handles paginated post listing requests
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /posts?page&tag
// Returns one page of posts (newest first, bodies truncated for display) and
// a Last-Page header so clients can paginate without a second request.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Absent or non-numeric page values fall back to the first page;
	// out-of-range values (< 1) are rejected by the service.
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.service.List(r.Context(), posts.ListPostsRequest{
		Page: page,
		Tag:  r.URL.Query().Get("tag"),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Last-Page", strconv.Itoa(result.LastPage))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result.Posts); err != nil {
		log.Printf("Failed to encode list response: %v", err)
	}
}
