// internal/app/store/sitestats/store.go
package sitestats

import (
	"context"
	"time"

	"github.com/dalemusser/coursecms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the singleton site stats document.
type Store struct {
	c *mongo.Collection
}

// New creates a new site stats store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_stats")}
}

// Get returns the stats document, creating it with the seed counts if it does
// not exist yet. Seeding and reading are a single upsert so concurrent first
// reads cannot race.
func (s *Store) Get(ctx context.Context) (models.SiteStats, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":               primitive.NewObjectID(),
			"key":               models.SiteStatsKey,
			"total_enrollments": int64(0),
			"total_courses":     int64(0),
			"total_services":    int64(0),
			"total_careers":     int64(0),
			"total_contacts":    int64(0),
			"customer_count":    int64(models.SeedCustomerCount),
			"displayed_count":   int64(models.SeedDisplayedCount),
			"updated_at":        now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stats models.SiteStats
	err := s.c.FindOneAndUpdate(ctx, bson.M{"key": models.SiteStatsKey}, update, opts).Decode(&stats)
	if err != nil {
		return models.SiteStats{}, err
	}
	return stats, nil
}

// Update sets the given counter fields (already mapped to document field
// names) and returns the updated document. A write that arrives before any
// read creates the document with just the supplied fields; counters never
// written stay at zero. The seed counts only apply on first read.
func (s *Store) Update(ctx context.Context, fields map[string]int64) (models.SiteStats, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for name, value := range fields {
		set[name] = value
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
			"key": models.SiteStatsKey,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stats models.SiteStats
	err := s.c.FindOneAndUpdate(ctx, bson.M{"key": models.SiteStatsKey}, update, opts).Decode(&stats)
	if err != nil {
		return models.SiteStats{}, err
	}
	return stats, nil
}

// IncrementCustomers bumps the customer count by one. The increment is a
// server-side $inc, so concurrent enrollments never lose updates.
func (s *Store) IncrementCustomers(ctx context.Context) error {
	if _, err := s.Get(ctx); err != nil {
		return err
	}
	update := bson.M{
		"$inc": bson.M{"customer_count": int64(1)},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"key": models.SiteStatsKey}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
