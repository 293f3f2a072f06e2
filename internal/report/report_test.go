package report

import (
	"strings"
	"testing"
	"time"

	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/models"
)

func TestRenderSummary(t *testing.T) {
	summary := &Summary{
		GeneratedAt:   time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
		TotalStudents: 3,
		Distribution: []db.GradeCount{
			{Grade: "A", Count: 1},
			{Grade: "B", Count: 2},
		},
		TopPerformers: []models.Student{
			{IndexNumber: "STU001", FullName: "Ama Mensah", Course: "Physics", Score: 92, Grade: "A"},
			{IndexNumber: "STU002", FullName: "Kofi Boateng", Course: "Physics", Score: 75, Grade: "B"},
		},
	}

	out := RenderSummary(summary)

	for _, want := range []string{
		"Total Students: 3",
		"A: 1",
		"B: 2",
		"1. Ama Mensah (STU001) - Physics: 92 (A)",
		"2. Kofi Boateng (STU002) - Physics: 75 (B)",
		"Generated on: 2026-08-25 10:30:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	summary := &Summary{GeneratedAt: time.Now().UTC()}
	out := RenderSummary(summary)

	if !strings.Contains(out, "Total Students: 0") {
		t.Errorf("expected zero total, got:\n%s", out)
	}
	if !strings.Contains(out, "(no records)") {
		t.Errorf("expected empty-distribution marker, got:\n%s", out)
	}
}

func TestRenderTable(t *testing.T) {
	students := []models.Student{
		{IndexNumber: "STU001", FullName: "Ama Mensah", Course: "Physics", Score: 92, Grade: "A"},
	}

	out := RenderTable(students)

	if !strings.Contains(out, "STU001") || !strings.Contains(out, "Ama Mensah") {
		t.Errorf("table output missing record fields:\n%s", out)
	}
	if !strings.Contains(out, "Total Records: 1") {
		t.Errorf("table output missing total:\n%s", out)
	}
}
