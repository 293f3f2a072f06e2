package ingest

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("parses well-formed records", func(t *testing.T) {
		input := "STU001, Ama Mensah, Computer Science, 85\nSTU002,Kofi Boateng,Mathematics,72\n"
		records, warnings, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(warnings) != 0 {
			t.Fatalf("expected no warnings, got %v", warnings)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].IndexNumber != "STU001" || records[0].FullName != "Ama Mensah" ||
			records[0].Course != "Computer Science" || records[0].Score != 85 {
			t.Errorf("unexpected first record: %+v", records[0])
		}
	})

	t.Run("skips empty lines silently", func(t *testing.T) {
		input := "\n\nSTU001,Ama Mensah,Physics,60\n\n"
		records, warnings, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(records) != 1 || len(warnings) != 0 {
			t.Errorf("expected 1 record and no warnings, got %d records, %d warnings", len(records), len(warnings))
		}
	})

	t.Run("warns on wrong field count", func(t *testing.T) {
		input := "STU001,Ama Mensah,Physics\n"
		records, warnings, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
		if len(warnings) != 1 || warnings[0].Line != 1 {
			t.Fatalf("expected one warning on line 1, got %v", warnings)
		}
		if !strings.Contains(warnings[0].Reason, "4 fields") {
			t.Errorf("expected field-count reason, got %q", warnings[0].Reason)
		}
	})

	t.Run("warns on non-integer score", func(t *testing.T) {
		input := "STU001,Ama Mensah,Physics,eighty\n"
		_, warnings, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("expected one warning, got %v", warnings)
		}
		if !strings.Contains(warnings[0].Reason, "integer") {
			t.Errorf("expected integer reason, got %q", warnings[0].Reason)
		}
	})

	t.Run("warns on out-of-range score", func(t *testing.T) {
		input := "STU001,Ama Mensah,Physics,101\nSTU002,Kofi Boateng,Physics,-1\n"
		records, warnings, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
		if len(warnings) != 2 {
			t.Fatalf("expected two warnings, got %v", warnings)
		}
	})

	t.Run("warns on empty index number", func(t *testing.T) {
		input := " ,Ama Mensah,Physics,80\n"
		_, warnings, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("expected one warning, got %v", warnings)
		}
	})

	t.Run("keeps valid lines around bad ones", func(t *testing.T) {
		input := strings.Join([]string{
			"STU001,Ama Mensah,Physics,80",
			"garbage line",
			"STU002,Kofi Boateng,Physics,55",
		}, "\n")
		records, warnings, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
		if len(warnings) != 1 || warnings[0].Line != 2 {
			t.Errorf("expected warning on line 2, got %v", warnings)
		}
	})
}
