package api

import (
	"errors"
	"net/http"

	"github.com/opengrade/gradebook/internal/auth"
	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/logger"
	"github.com/opengrade/gradebook/internal/models"
	"github.com/opengrade/gradebook/internal/validation"
)

// handleSignup creates a new account with the user role
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if err := validation.ValidateFullName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Ctx(r.Context()).Error("failed to hash password", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	user, err := s.db.CreateUser(r.Context(), req.Email, req.Name, hash, models.RoleUser)
	if err != nil {
		if errors.Is(err, db.ErrEmailExists) {
			respondError(w, http.StatusConflict, "email is already registered")
			return
		}
		logger.Ctx(r.Context()).Error("failed to create user", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	logger.Ctx(r.Context()).Info("account created", "user_id", user.ID)
	respondJSON(w, http.StatusCreated, user)
}

// handleLogin verifies credentials and issues a bearer token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = validation.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.db.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrAccountLocked):
			respondError(w, http.StatusLocked, "account temporarily locked, try again later")
		case errors.Is(err, db.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			logger.Ctx(r.Context()).Error("login failed", "error", err)
			respondError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		logger.Ctx(r.Context()).Error("failed to issue token", "error", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	logger.Ctx(r.Context()).Info("login succeeded", "user_id", user.ID)
	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: user})
}
