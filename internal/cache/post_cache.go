package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"Quill/internal/core/posts"
)

// postTTL bounds how stale a cached post can get. Mutations invalidate the
// entry eagerly; the TTL only covers writes that bypass this process.
const postTTL = 5 * time.Minute

// PostCache is a Redis-backed cache-aside store for individual posts.
type PostCache struct {
	client *redis.Client
}

// NewPostCache creates a new Redis post cache.
func NewPostCache(client *redis.Client) *PostCache {
	return &PostCache{client: client}
}

// Get returns the cached post for id, or (nil, nil) on a miss.
func (c *PostCache) Get(ctx context.Context, id string) (*posts.Post, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("reading post cache: %w", err)
	}

	var post posts.Post
	if err := json.Unmarshal([]byte(data), &post); err != nil {
		return nil, fmt.Errorf("decoding cached post: %w", err)
	}
	return &post, nil
}

// Set stores a post under its identifier with the cache TTL.
func (c *PostCache) Set(ctx context.Context, post *posts.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("encoding post for cache: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(post.ID.Hex()), data, postTTL).Err(); err != nil {
		return fmt.Errorf("writing post cache: %w", err)
	}
	return nil
}

// Invalidate drops a post from the cache after a mutation.
func (c *PostCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("invalidating post cache: %w", err)
	}
	return nil
}

func cacheKey(id string) string {
	return "post:" + id
}
