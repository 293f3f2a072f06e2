// Package report builds analytics aggregates and renders plain-text reports
// over the student results table.
package report

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/models"
)

// TopPerformerLimit is how many students the summary report lists
const TopPerformerLimit = 5

// Summary is the summary report data, also served as JSON by the API
type Summary struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	TotalStudents int              `json:"total_students"`
	Distribution  []db.GradeCount  `json:"distribution"`
	TopPerformers []models.Student `json:"top_performers"`
}

// Analytics bundles the whole-table statistics served by the API
type Analytics struct {
	GeneratedAt    time.Time          `json:"generated_at"`
	Stats          *db.ScoreStats     `json:"stats"`
	Distribution   []db.GradeCount    `json:"distribution"`
	CourseAverages []db.CourseAverage `json:"course_averages"`
}

// Generator builds reports from the database
type Generator struct {
	db *db.DB
}

// NewGenerator creates a report Generator
func NewGenerator(database *db.DB) *Generator {
	return &Generator{db: database}
}

// Summary collects the summary report data
func (g *Generator) Summary(ctx context.Context) (*Summary, error) {
	total, err := g.db.CountStudents(ctx)
	if err != nil {
		return nil, err
	}

	dist, err := g.db.GradeDistribution(ctx)
	if err != nil {
		return nil, err
	}

	top, err := g.db.TopPerformers(ctx, TopPerformerLimit)
	if err != nil {
		return nil, err
	}

	return &Summary{
		GeneratedAt:   time.Now().UTC(),
		TotalStudents: total,
		Distribution:  dist,
		TopPerformers: top,
	}, nil
}

// Analytics collects whole-table statistics, the grade distribution and
// per-course averages
func (g *Generator) Analytics(ctx context.Context) (*Analytics, error) {
	stats, err := g.db.GetScoreStats(ctx)
	if err != nil {
		return nil, err
	}

	dist, err := g.db.GradeDistribution(ctx)
	if err != nil {
		return nil, err
	}

	courses, err := g.db.CourseAverages(ctx)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		GeneratedAt:    time.Now().UTC(),
		Stats:          stats,
		Distribution:   dist,
		CourseAverages: courses,
	}, nil
}

// RenderSummary renders a Summary as the plain-text summary report
func RenderSummary(s *Summary) string {
	var b strings.Builder

	b.WriteString("Summary Report\n")
	b.WriteString("==============\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Students: %s\n\n", humanize.Comma(int64(s.TotalStudents)))

	b.WriteString("Grade Distribution:\n")
	if len(s.Distribution) == 0 {
		b.WriteString("  (no records)\n")
	}
	for _, gc := range s.Distribution {
		fmt.Fprintf(&b, "  %s: %d\n", gc.Grade, gc.Count)
	}

	fmt.Fprintf(&b, "\nTop %d Performers:\n", TopPerformerLimit)
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for i, student := range s.TopPerformers {
		fmt.Fprintf(&b, "%d. %s (%s) - %s: %d (%s)\n",
			i+1, student.FullName, student.IndexNumber, student.Course, student.Score, student.Grade)
	}

	return b.String()
}

// Detailed renders every record in a fixed-width table followed by
// whole-table statistics
func (g *Generator) Detailed(ctx context.Context) (string, error) {
	students, err := g.db.ListStudents(ctx, "", "")
	if err != nil {
		return "", err
	}

	stats, err := g.db.GetScoreStats(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Detailed Report\n")
	b.WriteString("===============\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05"))

	b.WriteString(RenderTable(students))

	fmt.Fprintf(&b, "\nAverage Score: %.1f\n", stats.Average)
	fmt.Fprintf(&b, "Highest Score: %d\n", stats.MaxScore)
	fmt.Fprintf(&b, "Lowest Score: %d\n", stats.MinScore)
	fmt.Fprintf(&b, "Passing (>=50): %d of %d\n", stats.Passing, stats.Total)

	return b.String(), nil
}

// Course renders per-course averages as a plain-text report
func (g *Generator) Course(ctx context.Context) (string, error) {
	averages, err := g.db.CourseAverages(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Course Report\n")
	b.WriteString("=============\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%-30s %-8s %-8s %-6s %-6s\n", "Course", "Avg", "Count", "Min", "Max")
	b.WriteString(strings.Repeat("-", 62) + "\n")

	for _, ca := range averages {
		fmt.Fprintf(&b, "%-30s %-8.1f %-8d %-6d %-6d\n",
			ca.Course, ca.Average, ca.Count, ca.MinScore, ca.MaxScore)
	}

	return b.String(), nil
}

// RenderTable renders student records as the fixed-width listing used by
// the CLI and the detailed report
func RenderTable(students []models.Student) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %-25s %-20s %-6s %-5s\n", "Index", "Name", "Course", "Score", "Grade")
	b.WriteString(strings.Repeat("-", 70) + "\n")
	for _, s := range students {
		fmt.Fprintf(&b, "%-10s %-25s %-20s %-6d %-5s\n",
			s.IndexNumber, s.FullName, s.Course, s.Score, s.Grade)
	}
	fmt.Fprintf(&b, "\nTotal Records: %d\n", len(students))
	return b.String()
}

// WriteFile writes a rendered report to path
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
