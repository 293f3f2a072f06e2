// Package models defines shared data structures used across the application
package models

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Student represents one row of the student results table.
// Grade is always derived from Score; callers never set it directly.
type Student struct {
	ID          int64     `json:"id"`
	IndexNumber string    `json:"index_number"`
	FullName    string    `json:"full_name"`
	Course      string    `json:"course"`
	Score       int       `json:"score"`
	Grade       string    `json:"grade"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SignupRequest is the payload for POST /auth/signup
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued on successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AddStudentRequest is the payload for POST /api/v1/students
type AddStudentRequest struct {
	IndexNumber string `json:"index_number"`
	FullName    string `json:"full_name"`
	Course      string `json:"course"`
	Score       int    `json:"score"`
}

// UpdateScoreRequest is the payload for PUT /api/v1/students/{indexNumber}/score
type UpdateScoreRequest struct {
	Score int `json:"score"`
}
