package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/opengrade/gradebook/internal/models"
)

// Account lockout policy
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute
)

const userColumns = `id, email, name, role, created_at, last_login`

// CreateUser creates a new account with the given bcrypt password hash.
// Returns ErrEmailExists if the email is already registered.
func (db *DB) CreateUser(ctx context.Context, email, name, passwordHash, role string) (*models.User, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	checkSQL := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err = tx.QueryRowContext(ctx, checkSQL, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	insertSQL := `
		INSERT INTO users (email, name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + userColumns

	var user models.User
	err = tx.QueryRowContext(ctx, insertSQL, email, name, passwordHash, role).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email address
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.User
	err := db.conn.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (db *DB) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	err := db.conn.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies email/password and returns the user if valid.
// Handles account lockout after too many failed attempts and records
// last_login on success.
func (db *DB) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, email, name, role, created_at, last_login,
		       password_hash, failed_attempts, locked_until
		FROM users
		WHERE email = $1
	`

	var user models.User
	var passwordHash string
	var failedAttempts int
	var lockedUntil *time.Time

	err = tx.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.LastLogin,
		&passwordHash, &failedAttempts, &lockedUntil,
	)
	if err == sql.ErrNoRows {
		// No such user - but use constant time to prevent timing attacks
		bcrypt.CompareHashAndPassword([]byte("$2a$12$dummy.hash.to.prevent.timing.attacks."), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if lockedUntil != nil && time.Now().Before(*lockedUntil) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		newAttempts := failedAttempts + 1
		var newLockedUntil *time.Time
		if newAttempts >= MaxFailedAttempts {
			lockTime := time.Now().Add(LockoutDuration)
			newLockedUntil = &lockTime
		}

		updateSQL := `UPDATE users SET failed_attempts = $1, locked_until = $2 WHERE id = $3`
		if _, err = tx.ExecContext(ctx, updateSQL, newAttempts, newLockedUntil, user.ID); err != nil {
			return nil, fmt.Errorf("failed to update failed attempts: %w", err)
		}

		if err = tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}

		if newLockedUntil != nil {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	// Success - reset failed attempts and record login time
	now := time.Now().UTC()
	resetSQL := `UPDATE users SET failed_attempts = 0, locked_until = NULL, last_login = $1 WHERE id = $2`
	if _, err = tx.ExecContext(ctx, resetSQL, now, user.ID); err != nil {
		return nil, fmt.Errorf("failed to reset failed attempts: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	user.LastLogin = &now
	return &user, nil
}

// CountUsers returns the total number of registered users
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// ListUsers returns all users ordered by creation time
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.LastLogin); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
