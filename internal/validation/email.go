package validation

import (
	"regexp"
	"strings"
)

// emailRegex validates common email formats
// Requires: local-part @ domain with at least one dot
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// IsValidEmail checks if an email address is valid
// Returns true if the email matches expected format with proper domain (requires TLD)
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)

	if len(email) == 0 || len(email) > 254 {
		return false
	}

	if !emailRegex.MatchString(email) {
		return false
	}

	// No consecutive dots in the local part
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if strings.Contains(parts[0], "..") {
		return false
	}

	return true
}

// NormalizeEmail lowercases and trims an email address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
