package service

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, store, 10)
	ctx := context.Background()

	info, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if info.User.ID == 0 {
		t.Error("Expected a user ID after registration")
	}
	if info.User.PasswordHash == "hunter22" {
		t.Error("Password must not be stored in plaintext")
	}

	user, err := svc.Authenticate(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != info.User.ID {
		t.Errorf("Expected user %d, got %d", info.User.ID, user.ID)
	}

	if _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for wrong password, got: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "hunter22"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for unknown username, got: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, store, 10)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@example.com", "pw1"); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	_, err := svc.Register(ctx, "alice", "b@example.com", "pw2")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected Conflict for taken username, got: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, store, 10)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "a@example.com", "pw"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty username, got: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "a@example.com", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty password, got: %v", err)
	}
}

func TestGetAndListUsers(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, store, 10)
	relations := NewRelationService(store, store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")

	if _, err := relations.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	info, err := svc.GetUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if info.FollowerCount != 1 {
		t.Errorf("Expected bob's follower count 1, got %d", info.FollowerCount)
	}

	if _, err := svc.GetUser(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected NotFound, got: %v", err)
	}

	page, err := svc.ListUsers(ctx, 1)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if page.Total != 2 || len(page.Users) != 2 {
		t.Errorf("Expected 2 users, got total=%d len=%d", page.Total, len(page.Users))
	}
	if page.Users[0].User.ID > page.Users[1].User.ID {
		t.Error("Expected users ordered by id ascending")
	}
}
