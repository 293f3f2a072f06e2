package api

import (
	"net/http"

	"github.com/opengrade/gradebook/internal/logger"
)

// maxImportSize caps import request bodies at 10 MB
const maxImportSize = 10 << 20

// handleImport ingests a flat file of student records from the request
// body and responds with the per-run import report
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportSize)
	defer body.Close()

	report, err := s.importer.Import(r.Context(), body)
	if err != nil {
		logger.Ctx(r.Context()).Error("import failed", "error", err)
		respondError(w, http.StatusInternalServerError, "import failed, no records were written")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
