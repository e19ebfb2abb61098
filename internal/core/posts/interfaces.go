package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// Create validates the request and persists a new post, returning the
	// stored post including its generated identifier
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)

	// List returns one fixed-size page of posts, newest first, optionally
	// restricted to posts carrying the given tag. Bodies in the returned
	// page are truncated for display; stored posts are never modified.
	List(ctx context.Context, req ListPostsRequest) (*ListPostsResponse, error)

	// Get returns the full, untruncated post for a validated identifier
	Get(ctx context.Context, id string) (*Post, error)

	// Update overwrites exactly the supplied top-level fields of a post and
	// returns the post-update document. The patch is deliberately not
	// revalidated; unknown fields are written through.
	Update(ctx context.Context, id string, patch map[string]interface{}) (*Post, error)

	// Delete removes a post by identifier. Deleting a post that does not
	// exist is not an error.
	Delete(ctx context.Context, id string) error

	// Search runs a full-text query over post titles and bodies
	Search(ctx context.Context, query string) ([]*Post, error)
}

// Repository defines the data access interface for the posts collection
type Repository interface {
	// Create inserts a new post and fills in its generated identifier
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by its hex identifier, ErrNotFound when absent
	GetByID(ctx context.Context, id string) (*Post, error)

	// List returns posts in descending identifier order, optionally filtered
	// by tag (exact, case-sensitive membership of the tags array)
	List(ctx context.Context, tag string, skip, limit int) ([]*Post, error)

	// Count returns the number of posts matching the same filter List uses
	Count(ctx context.Context, tag string) (int64, error)

	// Update applies a whole-field overwrite of the supplied fields and
	// returns the post-update document, ErrNotFound when absent
	Update(ctx context.Context, id string, fields map[string]interface{}) (*Post, error)

	// Delete removes a post by identifier, succeeding whether or not a
	// matching document existed
	Delete(ctx context.Context, id string) error
}

// Cache is a read-through cache for individual posts. Cache failures are
// logged and bypassed; they never change the outcome of a request.
type Cache interface {
	// Get returns the cached post or (nil, nil) on a miss
	Get(ctx context.Context, id string) (*Post, error)

	// Set stores a post under its identifier with the cache's TTL
	Set(ctx context.Context, post *Post) error

	// Invalidate drops a post from the cache after a mutation
	Invalidate(ctx context.Context, id string) error
}

// Index mirrors posts into the search backend and serves full-text queries.
// Indexing is asynchronous best-effort and never blocks a mutation.
type Index interface {
	Index(ctx context.Context, post *Post) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]*Post, error)
}
