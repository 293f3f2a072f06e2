package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/grade"
	"github.com/opengrade/gradebook/internal/logger"
	"github.com/opengrade/gradebook/internal/models"
	"github.com/opengrade/gradebook/internal/validation"
)

// handleListStudents returns student records, optionally filtered by
// ?course= (exact) and ?search= (substring on index number or name)
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	course := r.URL.Query().Get("course")
	search := r.URL.Query().Get("search")

	students, err := s.db.ListStudents(r.Context(), course, search)
	if err != nil {
		logger.Ctx(r.Context()).Error("failed to list students", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list students")
		return
	}

	if students == nil {
		students = []models.Student{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"students": students,
		"total":    len(students),
	})
}

// handleAddStudent creates a single student record
func (s *Server) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	var req models.AddStudentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateIndexNumber(req.IndexNumber); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidateFullName(req.FullName); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidateCourse(req.Course); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !grade.ValidScore(req.Score) {
		respondError(w, http.StatusBadRequest, "score must be between 0 and 100")
		return
	}

	student, err := s.db.InsertStudent(r.Context(), req.IndexNumber, req.FullName, req.Course, req.Score)
	if err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			respondError(w, http.StatusConflict, "index number already exists")
			return
		}
		logger.Ctx(r.Context()).Error("failed to add student", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to add student")
		return
	}

	respondJSON(w, http.StatusCreated, student)
}

// handleGetStudent returns one student record by index number
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	indexNumber := chi.URLParam(r, "indexNumber")

	student, err := s.db.GetStudent(r.Context(), indexNumber)
	if err != nil {
		if errors.Is(err, db.ErrStudentNotFound) {
			respondError(w, http.StatusNotFound, "student not found")
			return
		}
		logger.Ctx(r.Context()).Error("failed to get student", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get student")
		return
	}

	respondJSON(w, http.StatusOK, student)
}

// handleUpdateScore sets a student's score; the grade is recomputed
func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	indexNumber := chi.URLParam(r, "indexNumber")

	var req models.UpdateScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !grade.ValidScore(req.Score) {
		respondError(w, http.StatusBadRequest, "score must be between 0 and 100")
		return
	}

	student, err := s.db.UpdateScore(r.Context(), indexNumber, req.Score)
	if err != nil {
		if errors.Is(err, db.ErrStudentNotFound) {
			respondError(w, http.StatusNotFound, "student not found")
			return
		}
		logger.Ctx(r.Context()).Error("failed to update score", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update score")
		return
	}

	respondJSON(w, http.StatusOK, student)
}

// handleDeleteStudent removes a student record
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	indexNumber := chi.URLParam(r, "indexNumber")

	if err := s.db.DeleteStudent(r.Context(), indexNumber); err != nil {
		if errors.Is(err, db.ErrStudentNotFound) {
			respondError(w, http.StatusNotFound, "student not found")
			return
		}
		logger.Ctx(r.Context()).Error("failed to delete student", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete student")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
