// Package ingest implements flat-file ingestion of student records with
// insert-or-update reconciliation keyed on index number.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/grade"
	"github.com/opengrade/gradebook/internal/logger"
	"github.com/opengrade/gradebook/internal/validation"
)

// MaxLineLength guards against pathological input files
const MaxLineLength = 4096

// Record is one parsed line of an import file
type Record struct {
	IndexNumber string
	FullName    string
	Course      string
	Score       int
}

// Warning describes a line that was skipped during parsing
type Warning struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Report summarizes the outcome of one import run
type Report struct {
	RunID    string    `json:"run_id"`
	Inserted int       `json:"inserted"`
	Updated  int       `json:"updated"`
	Skipped  int       `json:"skipped"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Importer runs import files against the database
type Importer struct {
	db *db.DB
}

// NewImporter creates an Importer backed by the given database
func NewImporter(database *db.DB) *Importer {
	return &Importer{db: database}
}

// Parse reads comma-separated student records from r.
// Format: index_number,full_name,course,score - one record per line.
// Empty lines are skipped silently; malformed lines are skipped with a
// warning recording the line number and reason.
func Parse(r io.Reader) ([]Record, []Warning, error) {
	var records []Record
	var warnings []Warning

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		record, reason := parseLine(line)
		if reason != "" {
			warnings = append(warnings, Warning{Line: lineNumber, Reason: reason})
			continue
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}

	return records, warnings, nil
}

// parseLine parses one non-empty line into a Record.
// Returns a non-empty reason string when the line should be skipped.
func parseLine(line string) (Record, string) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return Record{}, fmt.Sprintf("expected 4 fields, got %d", len(parts))
	}

	record := Record{
		IndexNumber: strings.TrimSpace(parts[0]),
		FullName:    strings.TrimSpace(parts[1]),
		Course:      strings.TrimSpace(parts[2]),
	}

	if err := validation.ValidateIndexNumber(record.IndexNumber); err != nil {
		return Record{}, err.Error()
	}
	if err := validation.ValidateFullName(record.FullName); err != nil {
		return Record{}, err.Error()
	}
	if err := validation.ValidateCourse(record.Course); err != nil {
		return Record{}, err.Error()
	}

	score, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return Record{}, "score is not an integer"
	}
	if !grade.ValidScore(score) {
		return Record{}, fmt.Sprintf("score %d is out of range 0-100", score)
	}
	record.Score = score

	return record, ""
}

// Import parses records from r and upserts them in a single transaction.
// Parse-level problems skip individual lines; any database error aborts
// the entire import and no rows are written.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	records, warnings, err := Parse(r)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:    uuid.New().String(),
		Skipped:  len(warnings),
		Warnings: warnings,
	}

	if len(records) == 0 {
		logger.Info("import finished with no valid records",
			"run_id", report.RunID, "skipped", report.Skipped)
		return report, nil
	}

	tx, err := imp.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, record := range records {
		inserted, err := db.UpsertStudent(ctx, tx, record.IndexNumber, record.FullName, record.Course, record.Score)
		if err != nil {
			return nil, fmt.Errorf("import aborted: %w", err)
		}
		if inserted {
			report.Inserted++
		} else {
			report.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	logger.Info("import finished",
		"run_id", report.RunID,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped)

	return report, nil
}

// ImportFile opens path and runs Import on its contents
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	return imp.Import(ctx, file)
}
