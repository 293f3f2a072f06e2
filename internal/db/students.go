package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opengrade/gradebook/internal/grade"
	"github.com/opengrade/gradebook/internal/models"
)

const studentColumns = `id, index_number, full_name, course, score, grade, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }, s *models.Student) error {
	return row.Scan(&s.ID, &s.IndexNumber, &s.FullName, &s.Course, &s.Score, &s.Grade, &s.CreatedAt, &s.UpdatedAt)
}

// InsertStudent inserts a new student record, deriving the grade from the score.
// Returns ErrIndexExists if the index number is already taken.
func (db *DB) InsertStudent(ctx context.Context, indexNumber, fullName, course string, score int) (*models.Student, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	checkSQL := `SELECT EXISTS(SELECT 1 FROM students WHERE index_number = $1)`
	if err = tx.QueryRowContext(ctx, checkSQL, indexNumber).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check existing student: %w", err)
	}
	if exists {
		return nil, ErrIndexExists
	}

	insertSQL := `
		INSERT INTO students (index_number, full_name, course, score, grade)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + studentColumns

	var student models.Student
	err = scanStudent(tx.QueryRowContext(ctx, insertSQL, indexNumber, fullName, course, score, grade.Letter(score)), &student)
	if err != nil {
		return nil, fmt.Errorf("failed to insert student: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &student, nil
}

// UpsertStudent inserts or updates a record keyed on index number within the
// given transaction. Returns true if a new row was inserted, false if an
// existing row was updated.
func UpsertStudent(ctx context.Context, tx *sql.Tx, indexNumber, fullName, course string, score int) (inserted bool, err error) {
	// xmax = 0 only holds for freshly inserted rows, which distinguishes
	// the insert path from the conflict-update path in one round trip
	upsertSQL := `
		INSERT INTO students (index_number, full_name, course, score, grade)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (index_number) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			course = EXCLUDED.course,
			score = EXCLUDED.score,
			grade = EXCLUDED.grade,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	err = tx.QueryRowContext(ctx, upsertSQL, indexNumber, fullName, course, score, grade.Letter(score)).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert student %s: %w", indexNumber, err)
	}
	return inserted, nil
}

// BeginTx starts a transaction for multi-statement operations such as imports
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetStudent retrieves a student by index number
func (db *DB) GetStudent(ctx context.Context, indexNumber string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE index_number = $1`

	var student models.Student
	err := scanStudent(db.conn.QueryRowContext(ctx, query, indexNumber), &student)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return &student, nil
}

// ListStudents returns student records ordered by index number.
// course filters to an exact course name; search matches a case-insensitive
// substring of the index number or full name. Empty strings disable a filter.
func (db *DB) ListStudents(ctx context.Context, course, search string) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []interface{}

	if course != "" {
		args = append(args, course)
		query += fmt.Sprintf(" AND course = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (index_number ILIKE $%d OR full_name ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY index_number ASC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// UpdateScore sets a student's score and recomputes the grade.
// Returns ErrStudentNotFound if the index number does not exist.
func (db *DB) UpdateScore(ctx context.Context, indexNumber string, score int) (*models.Student, error) {
	query := `
		UPDATE students
		SET score = $1, grade = $2, updated_at = NOW()
		WHERE index_number = $3
		RETURNING ` + studentColumns

	var student models.Student
	err := scanStudent(db.conn.QueryRowContext(ctx, query, score, grade.Letter(score), indexNumber), &student)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to update score: %w", err)
	}

	return &student, nil
}

// DeleteStudent removes a student record by index number
func (db *DB) DeleteStudent(ctx context.Context, indexNumber string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM students WHERE index_number = $1`, indexNumber)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// CountStudents returns the total number of student records
func (db *DB) CountStudents(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
