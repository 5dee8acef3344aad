// internal/app/store/content/store.go
package content

import (
	"context"
	"errors"

	"github.com/dalemusser/coursecms/internal/app/store/storeutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document matches the given id.
var ErrNotFound = errors.New("document not found")

// Store provides CRUD access to one content collection. The document type is
// fixed per store so handlers decode straight into their model.
type Store[T any] struct {
	c *mongo.Collection
}

// New creates a store over the named collection.
func New[T any](db *mongo.Database, collection string) *Store[T] {
	return &Store[T]{c: db.Collection(collection)}
}

// List returns documents newest first. A limit of 0 returns everything;
// otherwise limit and the 1-based page select a window. The result is never
// nil so handlers can encode it as an empty JSON array.
func (s *Store[T]) List(ctx context.Context, limit, page int64) ([]T, error) {
	opts := []*options.FindOptions{
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	}
	if limit > 0 {
		opts = append(opts, storeutil.Paginate(limit, page))
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Get returns the document with the given id.
func (s *Store[T]) Get(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	return doc, err
}

// Insert stores a new document. The caller stamps it first.
func (s *Store[T]) Insert(ctx context.Context, doc T) error {
	_, err := s.c.InsertOne(ctx, doc)
	return err
}

// Update applies the given $set fields and returns the updated document.
func (s *Store[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (T, error) {
	var doc T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	return doc, err
}

// Delete removes the document with the given id.
func (s *Store[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
