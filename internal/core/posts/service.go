package posts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"
)

// indexTimeout bounds the detached goroutines that mirror mutations into
// the search index.
const indexTimeout = 10 * time.Second

type postService struct {
	repo  Repository
	cache Cache
	index Index
}

// NewPostService creates a new post service.
// cache and index can be nil if not needed (e.g., in tests or minimal setups).
func NewPostService(repo Repository, cache Cache, index Index) Service {
	return &postService{
		repo:  repo,
		cache: cache,
		index: index,
	}
}

// Create validates the request, persists a new post and mirrors it into the
// search index. Validation failures short-circuit before any storage call.
func (s *postService) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	post := &Post{
		Title: *req.Title,
		Body:  *req.Body,
		Tags:  *req.Tags,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.indexAsync(post)
	return post, nil
}

// validateCreateRequest checks the create schema: title and body must be
// present and non-empty, tags must be present as a string array (which may
// be empty). All violations are reported together.
func validateCreateRequest(req CreatePostRequest) error {
	var fields []FieldError

	switch {
	case req.Title == nil:
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	case *req.Title == "":
		fields = append(fields, FieldError{Field: "title", Message: "title must not be empty"})
	}

	switch {
	case req.Body == nil:
		fields = append(fields, FieldError{Field: "body", Message: "body is required"})
	case *req.Body == "":
		fields = append(fields, FieldError{Field: "body", Message: "body must not be empty"})
	}

	if req.Tags == nil {
		fields = append(fields, FieldError{Field: "tags", Message: "tags is required and must be an array of strings"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// List returns one page of posts, newest first. The returned bodies are
// truncated copies; stored documents are never modified.
func (s *postService) List(ctx context.Context, req ListPostsRequest) (*ListPostsResponse, error) {
	if req.Page < 1 {
		return nil, ErrInvalidPage
	}

	skip := (req.Page - 1) * PageSize
	page, err := s.repo.List(ctx, req.Tag, skip, PageSize)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	// Separate count over the same filter; the page itself says nothing
	// about how many posts match in total.
	total, err := s.repo.Count(ctx, req.Tag)
	if err != nil {
		return nil, fmt.Errorf("counting posts: %w", err)
	}

	previews := make([]*Post, len(page))
	for i, post := range page {
		previews[i] = previewOf(post)
	}

	return &ListPostsResponse{
		Posts:    previews,
		LastPage: int(math.Ceil(float64(total) / float64(PageSize))),
	}, nil
}

// previewOf returns a display copy of post with the body cut to the preview
// limit. Bodies at or under the limit pass through untouched.
func previewOf(post *Post) *Post {
	preview := *post
	if body := []rune(preview.Body); len(body) > bodyPreviewLimit {
		preview.Body = string(body[:bodyPreviewLimit]) + "..."
	}
	return &preview
}

// Get returns the full post for id, consulting the cache first.
func (s *postService) Get(ctx context.Context, id string) (*Post, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			log.Printf("Post cache read failed for %s: %v", id, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching post %s: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, post); err != nil {
			log.Printf("Post cache write failed for %s: %v", id, err)
		}
	}
	return post, nil
}

// Update overwrites the supplied top-level fields and returns the
// post-update document. The patch is not revalidated.
func (s *postService) Update(ctx context.Context, id string, patch map[string]interface{}) (*Post, error) {
	post, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating post %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.indexAsync(post)
	return post, nil
}

// Delete removes a post by identifier. Removing an already-deleted post
// succeeds as well.
func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting post %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.removeFromIndexAsync(id)
	return nil
}

// Search runs a full-text query against the search index.
func (s *postService) Search(ctx context.Context, query string) ([]*Post, error) {
	if s.index == nil {
		return nil, fmt.Errorf("search index not configured")
	}
	results, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	return results, nil
}

func (s *postService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Printf("Post cache invalidation failed for %s: %v", id, err)
	}
}

// indexAsync mirrors a post into the search index without blocking the
// request. The request context may already be done once the goroutine runs,
// so it carries its own deadline.
func (s *postService) indexAsync(post *Post) {
	if s.index == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		if err := s.index.Index(ctx, post); err != nil {
			log.Printf("Failed to index post %s: %v", post.ID.Hex(), err)
		}
	}()
}

func (s *postService) removeFromIndexAsync(id string) {
	if s.index == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		if err := s.index.Remove(ctx, id); err != nil {
			log.Printf("Failed to remove post %s from index: %v", id, err)
		}
	}()
}
