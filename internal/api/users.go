package api

import (
	"net/http"

	"github.com/opengrade/gradebook/internal/logger"
	"github.com/opengrade/gradebook/internal/models"
)

// handleListUsers returns all registered accounts. Admin only.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.ListUsers(r.Context())
	if err != nil {
		logger.Ctx(r.Context()).Error("failed to list users", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": len(users),
	})
}
