package ingest_test

import (
	"strings"
	"testing"

	"github.com/opengrade/gradebook/internal/ingest"
	"github.com/opengrade/gradebook/internal/testutil"
)

func TestImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := testutil.SetupTestEnvironment(t)
	importer := ingest.NewImporter(env.DB)

	t.Run("imports new records", func(t *testing.T) {
		env.CleanDB(t)

		input := strings.Join([]string{
			"STU001,Ama Mensah,Physics,85",
			"STU002,Kofi Boateng,Physics,55",
			"STU003,Esi Owusu,Biology,70",
		}, "\n")

		report, err := importer.Import(env.Ctx, strings.NewReader(input))
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if report.Inserted != 3 || report.Updated != 0 || report.Skipped != 0 {
			t.Errorf("expected 3/0/0, got %d/%d/%d", report.Inserted, report.Updated, report.Skipped)
		}
		if report.RunID == "" {
			t.Error("expected a run id")
		}

		student, err := env.DB.GetStudent(env.Ctx, "STU001")
		if err != nil {
			t.Fatalf("GetStudent failed: %v", err)
		}
		if student.Grade != "A" {
			t.Errorf("expected derived grade A, got %s", student.Grade)
		}
	})

	t.Run("re-import updates in place", func(t *testing.T) {
		env.CleanDB(t)

		first := "STU001,Ama Mensah,Physics,85\nSTU002,Kofi Boateng,Physics,55\n"
		if _, err := importer.Import(env.Ctx, strings.NewReader(first)); err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		second := "STU001,Ama Mensah,Physics,62\nSTU002,Kofi Boateng,Physics,55\n"
		report, err := importer.Import(env.Ctx, strings.NewReader(second))
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if report.Inserted != 0 || report.Updated != 2 {
			t.Errorf("expected 0 inserted 2 updated, got %d/%d", report.Inserted, report.Updated)
		}

		student, err := env.DB.GetStudent(env.Ctx, "STU001")
		if err != nil {
			t.Fatalf("GetStudent failed: %v", err)
		}
		if student.Score != 62 || student.Grade != "C" {
			t.Errorf("expected 62/C, got %d/%s", student.Score, student.Grade)
		}

		count, err := env.DB.CountStudents(env.Ctx)
		if err != nil {
			t.Fatalf("CountStudents failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 rows after re-import, got %d", count)
		}
	})

	t.Run("skips malformed lines and imports the rest", func(t *testing.T) {
		env.CleanDB(t)

		input := strings.Join([]string{
			"STU001,Ama Mensah,Physics,85",
			"this line is garbage",
			"STU002,Kofi Boateng,Physics,999",
			"STU003,Esi Owusu,Biology,70",
		}, "\n")

		report, err := importer.Import(env.Ctx, strings.NewReader(input))
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if report.Inserted != 2 || report.Skipped != 2 {
			t.Errorf("expected 2 inserted 2 skipped, got %d/%d", report.Inserted, report.Skipped)
		}
		if len(report.Warnings) != 2 {
			t.Fatalf("expected 2 warnings, got %v", report.Warnings)
		}
		if report.Warnings[0].Line != 2 || report.Warnings[1].Line != 3 {
			t.Errorf("unexpected warning lines: %v", report.Warnings)
		}
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		env.CleanDB(t)

		report, err := importer.Import(env.Ctx, strings.NewReader("\n\n"))
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if report.Inserted != 0 || report.Updated != 0 || report.Skipped != 0 {
			t.Errorf("expected empty report, got %+v", report)
		}

		count, err := env.DB.CountStudents(env.Ctx)
		if err != nil {
			t.Fatalf("CountStudents failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no rows, got %d", count)
		}
	})
}
