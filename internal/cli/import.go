package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opengrade/gradebook/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import student records from a flat file",
	Long: `Reads comma-separated student records (index_number,full_name,course,score)
from a file and inserts or updates them keyed on index number.

Malformed lines are skipped with a warning. All valid records are written
in a single transaction; a database error aborts the whole import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		importer := ingest.NewImporter(database)
		report, err := importer.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Import complete (run %s)\n", report.RunID)
		fmt.Printf("  Inserted: %d\n", report.Inserted)
		fmt.Printf("  Updated:  %d\n", report.Updated)
		fmt.Printf("  Skipped:  %d\n", report.Skipped)
		for _, warning := range report.Warnings {
			fmt.Printf("  line %d: %s\n", warning.Line, warning.Reason)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
