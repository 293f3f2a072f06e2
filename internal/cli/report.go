package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opengrade/gradebook/internal/report"
)

var (
	reportDetailed bool
	reportByCourse bool
	reportOut      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report",
	Long: `Generates the summary report: total students, grade distribution and
top performers. Use --detailed for the full record listing with score
statistics, or --by-course for per-course averages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportDetailed && reportByCourse {
			return fmt.Errorf("--detailed and --by-course are mutually exclusive")
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		generator := report.NewGenerator(database)

		var content string
		switch {
		case reportDetailed:
			content, err = generator.Detailed(cmd.Context())
		case reportByCourse:
			content, err = generator.Course(cmd.Context())
		default:
			var summary *report.Summary
			summary, err = generator.Summary(cmd.Context())
			if err == nil {
				content = report.RenderSummary(summary)
			}
		}
		if err != nil {
			return err
		}

		if reportOut != "" {
			if err := report.WriteFile(reportOut, content); err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", reportOut)
			return nil
		}

		fmt.Print(content)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportDetailed, "detailed", false, "full record listing with statistics")
	reportCmd.Flags().BoolVar(&reportByCourse, "by-course", false, "per-course averages")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "write the report to a file instead of stdout")

	rootCmd.AddCommand(reportCmd)
}
