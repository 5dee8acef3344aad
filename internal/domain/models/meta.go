// internal/domain/models/meta.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meta holds the server-managed fields shared by every content document.
// Embed it inline so the fields land at the top level of the stored document.
type Meta struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Stamp assigns a fresh ObjectID and sets both timestamps to now (UTC).
// Call it once, just before the first insert.
func (m *Meta) Stamp() {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
}
