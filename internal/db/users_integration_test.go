package db_test

import (
	"errors"
	"testing"

	"github.com/opengrade/gradebook/internal/auth"
	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/models"
	"github.com/opengrade/gradebook/internal/testutil"
)

func TestUsers_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := testutil.SetupTestEnvironment(t)

	t.Run("creates and retrieves a user", func(t *testing.T) {
		env.CleanDB(t)

		hash, err := auth.HashPassword("testpassword")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}

		user, err := env.DB.CreateUser(env.Ctx, "ama@example.com", "Ama Mensah", hash, models.RoleUser)
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == 0 || user.Email != "ama@example.com" || user.Role != models.RoleUser {
			t.Errorf("unexpected user: %+v", user)
		}
		if user.LastLogin != nil {
			t.Error("new user should have no last_login")
		}

		fetched, err := env.DB.GetUserByEmail(env.Ctx, "ama@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if fetched.ID != user.ID {
			t.Errorf("expected id %d, got %d", user.ID, fetched.ID)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		env.CleanDB(t)
		testutil.CreateTestUser(t, env, "dup@example.com", models.RoleUser)

		_, err := env.DB.CreateUser(env.Ctx, "dup@example.com", "Other", "hash", models.RoleUser)
		if !errors.Is(err, db.ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("authenticates with correct password and records last_login", func(t *testing.T) {
		env.CleanDB(t)
		created := testutil.CreateTestUser(t, env, "login@example.com", models.RoleUser)

		user, err := env.DB.Authenticate(env.Ctx, "login@example.com", "testpassword")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != created.ID {
			t.Errorf("expected id %d, got %d", created.ID, user.ID)
		}
		if user.LastLogin == nil {
			t.Error("expected last_login to be set after authentication")
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		env.CleanDB(t)
		testutil.CreateTestUser(t, env, "wrong@example.com", models.RoleUser)

		_, err := env.DB.Authenticate(env.Ctx, "wrong@example.com", "not-the-password")
		if !errors.Is(err, db.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		env.CleanDB(t)

		_, err := env.DB.Authenticate(env.Ctx, "nobody@example.com", "whatever")
		if !errors.Is(err, db.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("locks account after repeated failures", func(t *testing.T) {
		env.CleanDB(t)
		testutil.CreateTestUser(t, env, "locked@example.com", models.RoleUser)

		var lastErr error
		for i := 0; i < db.MaxFailedAttempts; i++ {
			_, lastErr = env.DB.Authenticate(env.Ctx, "locked@example.com", "bad-password")
		}
		if !errors.Is(lastErr, db.ErrAccountLocked) {
			t.Fatalf("expected ErrAccountLocked on final attempt, got %v", lastErr)
		}

		// Correct password is also rejected while locked
		_, err := env.DB.Authenticate(env.Ctx, "locked@example.com", "testpassword")
		if !errors.Is(err, db.ErrAccountLocked) {
			t.Errorf("expected ErrAccountLocked, got %v", err)
		}
	})

	t.Run("counts and lists users", func(t *testing.T) {
		env.CleanDB(t)
		testutil.CreateTestUser(t, env, "a@example.com", models.RoleUser)
		testutil.CreateTestUser(t, env, "b@example.com", models.RoleAdmin)

		count, err := env.DB.CountUsers(env.Ctx)
		if err != nil {
			t.Fatalf("CountUsers failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 users, got %d", count)
		}

		users, err := env.DB.ListUsers(env.Ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("expected 2 users, got %d", len(users))
		}
	})
}

func TestBootstrapAdmin_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := testutil.SetupTestEnvironment(t)

	t.Run("creates admin on empty users table", func(t *testing.T) {
		env.CleanDB(t)

		if err := auth.BootstrapAdmin(env.Ctx, env.DB, "admin@example.com", "bootstrap-password"); err != nil {
			t.Fatalf("BootstrapAdmin failed: %v", err)
		}

		user, err := env.DB.GetUserByEmail(env.Ctx, "admin@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %s", user.Role)
		}
	})

	t.Run("no-op when users exist", func(t *testing.T) {
		env.CleanDB(t)
		testutil.CreateTestUser(t, env, "existing@example.com", models.RoleUser)

		if err := auth.BootstrapAdmin(env.Ctx, env.DB, "admin@example.com", "bootstrap-password"); err != nil {
			t.Fatalf("BootstrapAdmin failed: %v", err)
		}

		if _, err := env.DB.GetUserByEmail(env.Ctx, "admin@example.com"); !errors.Is(err, db.ErrUserNotFound) {
			t.Errorf("expected no bootstrap admin, got %v", err)
		}
	})

	t.Run("no-op when email unset", func(t *testing.T) {
		env.CleanDB(t)

		if err := auth.BootstrapAdmin(env.Ctx, env.DB, "", ""); err != nil {
			t.Fatalf("BootstrapAdmin failed: %v", err)
		}

		count, err := env.DB.CountUsers(env.Ctx)
		if err != nil {
			t.Fatalf("CountUsers failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no users, got %d", count)
		}
	})
}
