package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Quill/internal/core/posts"
)

// PostRepository implements posts.Repository against a MongoDB collection.
// One document per post: {_id, title, body, tags}.
type PostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository creates a new MongoDB-backed post repository.
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{collection: db.Collection("posts")}
}

// Create inserts a new post and fills in its generated ObjectID.
func (r *PostRepository) Create(ctx context.Context, post *posts.Post) error {
	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	post.ID = oid
	return nil
}

// GetByID retrieves a post by its hex identifier. The identifier is expected
// to be pre-validated; a malformed one is still rejected here rather than
// sent to the server.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post id %q: %w", id, err)
	}

	var post posts.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching post: %w", err)
	}
	return &post, nil
}

// List returns posts in descending _id order (newest first), optionally
// restricted to posts whose tags array contains tag.
func (r *PostRepository) List(ctx context.Context, tag string, skip, limit int) ([]*posts.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, tagFilter(tag), opts)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer cursor.Close(ctx)

	results := make([]*posts.Post, 0, limit)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding posts: %w", err)
	}
	return results, nil
}

// Count returns the number of posts matching the same filter List uses.
func (r *PostRepository) Count(ctx context.Context, tag string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, tagFilter(tag))
	if err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return count, nil
}

// Update overwrites exactly the supplied top-level fields via $set and
// returns the post-update document. Fields are written through as given,
// including ones outside the post schema.
func (r *PostRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*posts.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post id %q: %w", id, err)
	}

	// The server rejects an empty $set; an empty patch is a plain no-op.
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post posts.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}
	return &post, nil
}

// Delete removes a post by identifier. The delete primitive does not report
// prior existence, which makes removal idempotent.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post id %q: %w", id, err)
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func tagFilter(tag string) bson.M {
	if tag == "" {
		return bson.M{}
	}
	// Matching a scalar against an array field is Mongo's array-membership
	// query; equality is exact and case-sensitive.
	return bson.M{"tags": tag}
}
