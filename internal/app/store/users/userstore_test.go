package userstore

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/dalemusser/coursecms/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx := context.Background()

	user, created, err := s.EnsureAdmin(ctx, "Admin@Example.com", "Site Admin", "hash-one")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if !created {
		t.Error("expected created=true on first call")
	}
	if user.Email != "admin@example.com" {
		t.Errorf("email = %q, want lower-cased", user.Email)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", user.Role)
	}

	// Second call must not touch the existing account.
	again, created, err := s.EnsureAdmin(ctx, "admin@example.com", "Other Name", "hash-two")
	if err != nil {
		t.Fatalf("second EnsureAdmin returned error: %v", err)
	}
	if created {
		t.Error("expected created=false on second call")
	}
	if again.ID != user.ID {
		t.Error("second call created a different account")
	}
	if again.PasswordHash != "hash-one" {
		t.Errorf("password hash changed to %q", again.PasswordHash)
	}
}

func TestGetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx := context.Background()

	if _, _, err := s.EnsureAdmin(ctx, "admin@example.com", "Admin", "hash"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}

	user, err := s.GetByEmail(ctx, "  ADMIN@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("email = %q", user.Email)
	}

	_, err = s.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx := context.Background()

	user, _, err := s.EnsureAdmin(ctx, "admin@example.com", "Admin", "old-hash")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}

	if err := s.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
	got, err := s.GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("hash = %q, want new-hash", got.PasswordHash)
	}
}
