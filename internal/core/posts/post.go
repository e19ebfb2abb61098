package posts

import "go.mongodb.org/mongo-driver/bson/primitive"

// PageSize is the fixed number of posts per list page.
const PageSize = 10

// bodyPreviewLimit is the maximum body length returned by list views.
// Longer bodies are cut here and suffixed with an ellipsis.
const bodyPreviewLimit = 350

// Post is a blog post document as stored in the posts collection.
// The identifier is generated by the storage backend and never reused;
// because ObjectIDs are time-ordered, descending identifier order doubles
// as newest-first order.
type Post struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title" json:"title"`
	Body  string             `bson:"body" json:"body"`
	Tags  []string           `bson:"tags" json:"tags"`
}

// CreatePostRequest represents input for creating a new post.
// Fields are pointers so validation can tell an absent field apart from an
// empty one.
type CreatePostRequest struct {
	Title *string   `json:"title"`
	Body  *string   `json:"body"`
	Tags  *[]string `json:"tags"`
}

// ListPostsRequest represents the query parameters of a list request.
// Tag is empty when no tag filter was supplied.
type ListPostsRequest struct {
	Page int
	Tag  string
}

// ListPostsResponse is one page of posts plus the index of the last
// available page for the active filter, so clients can render pagination
// without a second round trip.
type ListPostsResponse struct {
	Posts    []*Post
	LastPage int
}

// ValidID reports whether id is a structurally valid post identifier
// (a 24-character hex ObjectID). Malformed identifiers are rejected before
// they reach storage, where they would surface as opaque driver errors.
func ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
