// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/coursecms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_users")}
}

// GetByEmail looks up an admin account by email, case-insensitively. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := s.c.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureAdmin creates the admin account if it does not exist yet. An existing
// account is left untouched so a changed seed password never clobbers one set
// through the API.
func (s *Store) EnsureAdmin(ctx context.Context, email, name, passwordHash string) (*models.AdminUser, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().UTC()

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":           primitive.NewObjectID(),
			"name":          name,
			"email":         email,
			"password_hash": passwordHash,
			"role":          models.RoleAdmin,
			"created_at":    now,
			"updated_at":    now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.AdminUser
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&u); err != nil {
		return nil, false, err
	}
	created := u.CreatedAt.Equal(now)
	return &u, created, nil
}

// UpdatePassword replaces the stored hash for the given account.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
