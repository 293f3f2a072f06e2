package api

import (
	"net/http"

	"github.com/opengrade/gradebook/internal/logger"
	"github.com/opengrade/gradebook/internal/report"
)

// handleSummaryReport returns the summary report as JSON, or as plain
// text with ?format=text
func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Summary(r.Context())
	if err != nil {
		logger.Ctx(r.Context()).Error("failed to build summary report", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(report.RenderSummary(summary)))
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// handleAnalytics returns whole-table statistics, the grade distribution
// and per-course averages
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.reports.Analytics(r.Context())
	if err != nil {
		logger.Ctx(r.Context()).Error("failed to build analytics", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build analytics")
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}
