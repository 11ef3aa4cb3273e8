package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/persistence"
)

func TestUserRepository_EmailNormalization(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testUser("user-1", "Admin@Arena.Test")
	if _, err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	stored, err := repo.GetUserByEmail(ctx, "ADMIN@arena.test")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if stored.Email != "admin@arena.test" {
		t.Errorf("Email = %q, want lowercase", stored.Email)
	}
	if stored.Role != access.RoleAdmin || stored.LocationID != "loc-1" || !stored.Active {
		t.Errorf("stored user = %+v", stored)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, testUser("user-1", "admin@arena.test")); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	_, err := repo.CreateUser(ctx, testUser("user-2", "ADMIN@ARENA.TEST"))
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestUserRepository_OwnerWithoutLocation(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := testUser("user-owner", "owner@arena.test")
	owner.Role = access.RoleOwner
	owner.LocationID = ""
	if _, err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	stored, err := repo.GetUser(ctx, "user-owner")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if stored.LocationID != "" {
		t.Errorf("LocationID = %q, want empty", stored.LocationID)
	}
}

func TestUserRepository_UpdateUser(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, testUser("user-1", "admin@arena.test")); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user := testUser("user-1", "admin@arena.test")
	user.PasswordHash = "$argon2id$rotated"
	user.Active = false
	if _, err := repo.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	stored, err := repo.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if stored.PasswordHash != "$argon2id$rotated" || stored.Active {
		t.Errorf("stored user = %+v", stored)
	}

	missing := testUser("user-missing", "ghost@arena.test")
	if _, err := repo.UpdateUser(ctx, missing); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
