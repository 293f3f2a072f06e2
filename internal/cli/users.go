package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opengrade/gradebook/internal/auth"
	"github.com/opengrade/gradebook/internal/models"
	"github.com/opengrade/gradebook/internal/validation"
)

var (
	createUserEmail string
	createUserName  string
	createUserAdmin bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := validation.NormalizeEmail(createUserEmail)
		if !validation.IsValidEmail(email) {
			return fmt.Errorf("invalid email address")
		}
		if err := validation.ValidateFullName(createUserName); err != nil {
			return err
		}

		password, err := promptPassword()
		if err != nil {
			return err
		}
		if err := validation.ValidatePassword(password); err != nil {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		role := models.RoleUser
		if createUserAdmin {
			role = models.RoleAdmin
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		user, err := database.CreateUser(cmd.Context(), email, createUserName, hash, role)
		if err != nil {
			return err
		}

		fmt.Printf("Created %s account %s (id %d)\n", user.Role, user.Email, user.ID)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		users, err := database.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%-30s %-25s %-7s %-15s\n", "Email", "Name", "Role", "Last Login")
		for _, user := range users {
			lastLogin := "never"
			if user.LastLogin != nil {
				lastLogin = humanize.Time(*user.LastLogin)
			}
			fmt.Printf("%-30s %-25s %-7s %-15s\n", user.Email, user.Name, user.Role, lastLogin)
		}
		return nil
	},
}

// promptPassword reads the password twice without echo
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password), nil
}

func init() {
	usersCreateCmd.Flags().StringVar(&createUserEmail, "email", "", "account email (required)")
	usersCreateCmd.Flags().StringVar(&createUserName, "name", "", "display name (required)")
	usersCreateCmd.Flags().BoolVar(&createUserAdmin, "admin", false, "grant the admin role")
	usersCreateCmd.MarkFlagRequired("email")
	usersCreateCmd.MarkFlagRequired("name")

	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}
