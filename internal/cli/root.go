// Package cli implements the gradebook command line interface. Commands
// talk directly to PostgreSQL, sharing the server's database layer.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/opengrade/gradebook/internal/db"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:   "gradebook",
	Short: "Manage student score records",
	Long: `Gradebook manages student score records in PostgreSQL: importing
flat files, maintaining individual records and generating reports.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string (defaults to DATABASE_URL)")
}

// openDB connects to the database using the --database-url flag, the
// DATABASE_URL env var, or a config.env file in the working directory
func openDB() (*db.DB, error) {
	dsn := databaseURL
	if dsn == "" {
		// config.env supports running the CLI outside a configured shell
		godotenv.Load("config.env")
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, fmt.Errorf("no database configured: set DATABASE_URL or pass --database-url")
	}

	database, err := db.Connect(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
