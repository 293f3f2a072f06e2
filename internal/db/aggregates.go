package db

import (
	"context"
	"fmt"

	"github.com/opengrade/gradebook/internal/models"
)

// GradeCount is one bucket of the grade distribution
type GradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// CourseAverage summarizes scores within one course
type CourseAverage struct {
	Course   string  `json:"course"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
	MinScore int     `json:"min_score"`
	MaxScore int     `json:"max_score"`
}

// ScoreStats holds whole-table score statistics.
// All fields are zero when the table is empty.
type ScoreStats struct {
	Total     int     `json:"total"`
	Average   float64 `json:"average"`
	MinScore  int     `json:"min_score"`
	MaxScore  int     `json:"max_score"`
	Passing   int     `json:"passing"`   // score >= 50
	Excellent int     `json:"excellent"` // score >= 80
	Courses   int     `json:"courses"`   // distinct course count
}

// GradeDistribution returns the number of students per letter grade,
// ordered by grade
func (db *DB) GradeDistribution(ctx context.Context) ([]GradeCount, error) {
	query := `
		SELECT grade, COUNT(*)
		FROM students
		GROUP BY grade
		ORDER BY grade
	`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query grade distribution: %w", err)
	}
	defer rows.Close()

	var dist []GradeCount
	for rows.Next() {
		var gc GradeCount
		if err := rows.Scan(&gc.Grade, &gc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan grade count: %w", err)
		}
		dist = append(dist, gc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade distribution: %w", err)
	}

	return dist, nil
}

// CourseAverages returns per-course score summaries ordered by course name
func (db *DB) CourseAverages(ctx context.Context) ([]CourseAverage, error) {
	query := `
		SELECT course, AVG(score), COUNT(*), MIN(score), MAX(score)
		FROM students
		GROUP BY course
		ORDER BY course
	`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query course averages: %w", err)
	}
	defer rows.Close()

	var averages []CourseAverage
	for rows.Next() {
		var ca CourseAverage
		if err := rows.Scan(&ca.Course, &ca.Average, &ca.Count, &ca.MinScore, &ca.MaxScore); err != nil {
			return nil, fmt.Errorf("failed to scan course average: %w", err)
		}
		averages = append(averages, ca)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course averages: %w", err)
	}

	return averages, nil
}

// GetScoreStats returns whole-table statistics in a single query.
// COALESCE keeps the empty-table case at zero values instead of NULL scan errors.
func (db *DB) GetScoreStats(ctx context.Context) (*ScoreStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(score), 0),
			COALESCE(MIN(score), 0),
			COALESCE(MAX(score), 0),
			COUNT(*) FILTER (WHERE score >= 50),
			COUNT(*) FILTER (WHERE score >= 80),
			COUNT(DISTINCT course)
		FROM students
	`

	var stats ScoreStats
	err := db.conn.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.Average, &stats.MinScore, &stats.MaxScore,
		&stats.Passing, &stats.Excellent, &stats.Courses,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query score stats: %w", err)
	}

	return &stats, nil
}

// TopPerformers returns up to limit students ordered by score descending,
// index number ascending as the tiebreak
func (db *DB) TopPerformers(ctx context.Context, limit int) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + `
		FROM students
		ORDER BY score DESC, index_number ASC
		LIMIT $1`

	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top performers: %w", err)
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
		return nil, fmt.Errorf("error iterating top performers: %w", err)
	}

	return students, nil
}
