// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// contentCollections are the resource collections listed newest-first by the
// API; each gets a created_at index for the list sort.
var contentCollections = []string{
	"home_content",
	"home_courses",
	"home_services",
	"service_content",
	"careers",
	"contacts",
	"enrollments",
	"enroll_courses",
}

/*
EnsureAll is called at startup and from test setup. Each ensure* call is
idempotent; errors are aggregated so every problem is visible and startup can
fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, name := range contentCollections {
		if err := ensureCreatedAt(ctx, db, name); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}
	if err := ensureAdminUsers(ctx, db); err != nil {
		problems = append(problems, "admin_users: "+err.Error())
	}
	if err := ensureSiteStats(ctx, db); err != nil {
		problems = append(problems, "site_stats: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureCreatedAt backs the created_at descending list sort.
func ensureCreatedAt(ctx context.Context, db *mongo.Database, collection string) error {
	_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_created_at"),
	})
	return err
}

// ensureAdminUsers enforces one account per email.
func ensureAdminUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("admin_users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email_unique").SetUnique(true),
	})
	return err
}

// ensureSiteStats enforces the singleton: at most one document per key, so
// concurrent lazy seeding cannot create duplicates.
func ensureSiteStats(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("site_stats").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetName("idx_key_unique").SetUnique(true),
	})
	return err
}
