package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quill/internal/core/posts"
)

const indexName = "posts"

// indexMapping types title/body for full-text matching and tags as exact
// keywords.
const indexMapping = `{
	"mappings": {
		"properties": {
			"title": {"type": "text"},
			"body": {"type": "text"},
			"tags": {"type": "keyword"}
		}
	}
}`

// PostIndex mirrors posts into Elasticsearch and serves full-text queries.
// The Mongo _id doubles as the Elasticsearch document id, so re-indexing an
// updated post overwrites its previous version.
type PostIndex struct {
	client *elasticsearch.Client
}

// NewPostIndex creates a new Elasticsearch post index.
func NewPostIndex(client *elasticsearch.Client) *PostIndex {
	return &PostIndex{client: client}
}

// postDocument is the indexed shape of a post; the identifier lives in the
// document id, not the source.
type postDocument struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// EnsureIndex creates the posts index if it does not exist yet.
func (s *PostIndex) EnsureIndex(ctx context.Context) error {
	req := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(indexMapping),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("creating search index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("creating search index: %s", res.String())
	}
	return nil
}

// Index writes a post into the search index, replacing any previous version.
func (s *PostIndex) Index(ctx context.Context, post *posts.Post) error {
	doc, err := json.Marshal(postDocument{
		Title: post.Title,
		Body:  post.Body,
		Tags:  post.Tags,
	})
	if err != nil {
		return fmt.Errorf("encoding post document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: post.ID.Hex(),
		Body:       bytes.NewReader(doc),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("indexing post: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing post: %s", res.String())
	}
	return nil
}

// Remove drops a post from the search index. Removing a post that was never
// indexed is not an error.
func (s *PostIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      indexName,
		DocumentID: id,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("removing post from index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("removing post from index: %s", res.String())
	}
	return nil
}

// Search runs a multi-match query over titles and bodies and returns the
// matching posts, best match first.
func (s *PostIndex) Search(ctx context.Context, query string) ([]*posts.Post, error) {
	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title", "body"},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery); err != nil {
		return nil, fmt.Errorf("encoding search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(indexName),
		s.client.Search.WithBody(&buf),
		s.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("searching posts: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID     string       `json:"_id"`
				Source postDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	matches := make([]*posts.Post, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		oid, err := primitive.ObjectIDFromHex(hit.ID)
		if err != nil {
			// Foreign documents in the index are skipped, not fatal.
			continue
		}
		matches = append(matches, &posts.Post{
			ID:    oid,
			Title: hit.Source.Title,
			Body:  hit.Source.Body,
			Tags:  hit.Source.Tags,
		})
	}
	return matches, nil
}
