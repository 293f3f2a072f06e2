package auth

import (
	"context"
	"fmt"

	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/logger"
	"github.com/opengrade/gradebook/internal/models"
	"github.com/opengrade/gradebook/internal/validation"
)

// BootstrapAdmin creates the initial admin account when the users table
// is empty. A no-op when users already exist or when email is blank.
func BootstrapAdmin(ctx context.Context, database *db.DB, email, password string) error {
	if email == "" {
		return nil
	}

	count, err := database.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	email = validation.NormalizeEmail(email)
	if !validation.IsValidEmail(email) {
		return fmt.Errorf("bootstrap admin email is invalid")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("bootstrap admin password: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	user, err := database.CreateUser(ctx, email, "Administrator", hash, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	logger.Info("created bootstrap admin account", "user_id", user.ID, "email", email)
	return nil
}
