package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opengrade/gradebook/internal/grade"
	"github.com/opengrade/gradebook/internal/report"
	"github.com/opengrade/gradebook/internal/validation"
)

var (
	listCourse string
	listSearch string

	addIndexNumber string
	addFullName    string
	addCourse      string
	addScore       int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List student records",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		students, err := database.ListStudents(cmd.Context(), listCourse, listSearch)
		if err != nil {
			return err
		}

		fmt.Print(report.RenderTable(students))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <index-number>",
	Short: "Show one student record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		student, err := database.GetStudent(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Index Number: %s\n", student.IndexNumber)
		fmt.Printf("Full Name:    %s\n", student.FullName)
		fmt.Printf("Course:       %s\n", student.Course)
		fmt.Printf("Score:        %d\n", student.Score)
		fmt.Printf("Grade:        %s\n", student.Grade)
		fmt.Printf("Updated:      %s\n", student.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a student record",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.ValidateIndexNumber(addIndexNumber); err != nil {
			return err
		}
		if err := validation.ValidateFullName(addFullName); err != nil {
			return err
		}
		if err := validation.ValidateCourse(addCourse); err != nil {
			return err
		}
		if !grade.ValidScore(addScore) {
			return fmt.Errorf("score must be between 0 and 100")
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		student, err := database.InsertStudent(cmd.Context(), addIndexNumber, addFullName, addCourse, addScore)
		if err != nil {
			return err
		}

		fmt.Printf("Added %s (%s): %d (%s)\n", student.FullName, student.IndexNumber, student.Score, student.Grade)
		return nil
	},
}

var setScoreCmd = &cobra.Command{
	Use:   "set-score <index-number> <score>",
	Short: "Update a student's score",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("score must be an integer")
		}
		if !grade.ValidScore(score) {
			return fmt.Errorf("score must be between 0 and 100")
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		student, err := database.UpdateScore(cmd.Context(), args[0], score)
		if err != nil {
			return err
		}

		fmt.Printf("Updated %s: %d (%s)\n", student.IndexNumber, student.Score, student.Grade)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <index-number>",
	Short: "Remove a student record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.DeleteStudent(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCourse, "course", "", "filter by exact course name")
	listCmd.Flags().StringVar(&listSearch, "search", "", "substring match on index number or name")

	addCmd.Flags().StringVar(&addIndexNumber, "index", "", "index number (required)")
	addCmd.Flags().StringVar(&addFullName, "name", "", "full name (required)")
	addCmd.Flags().StringVar(&addCourse, "course", "", "course name (required)")
	addCmd.Flags().IntVar(&addScore, "score", 0, "score 0-100 (required)")
	addCmd.MarkFlagRequired("index")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("course")
	addCmd.MarkFlagRequired("score")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setScoreCmd)
	rootCmd.AddCommand(removeCmd)
}
