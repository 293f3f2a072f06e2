package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Validation limits for student record fields
const (
	MaxIndexNumberLength = 10  // Matches the index_number column width
	MinIndexNumberLength = 1
	MaxFullNameLength    = 200
	MaxCourseLength      = 100
	MinPasswordLength    = 8
)

// indexNumberRegex matches letters, digits, slashes and dashes,
// covering formats like "UGR/1234/21" and "STU-0042"
var indexNumberRegex = regexp.MustCompile(`^[A-Za-z0-9/_-]+$`)

// ValidateIndexNumber validates a student index number
func ValidateIndexNumber(indexNumber string) error {
	if indexNumber == "" {
		return fmt.Errorf("index_number is required")
	}
	if len(indexNumber) < MinIndexNumberLength || len(indexNumber) > MaxIndexNumberLength {
		return fmt.Errorf("index_number must be between %d and %d characters", MinIndexNumberLength, MaxIndexNumberLength)
	}
	if !indexNumberRegex.MatchString(indexNumber) {
		return fmt.Errorf("index_number contains invalid characters")
	}
	return nil
}

// ValidateFullName validates a student or user display name
func ValidateFullName(name string) error {
	if name == "" {
		return fmt.Errorf("full_name is required")
	}
	if len(name) > MaxFullNameLength {
		return fmt.Errorf("full_name must be at most %d characters", MaxFullNameLength)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("full_name must be valid UTF-8")
	}
	return nil
}

// ValidateCourse validates a course name
func ValidateCourse(course string) error {
	if course == "" {
		return fmt.Errorf("course is required")
	}
	if len(course) > MaxCourseLength {
		return fmt.Errorf("course must be at most %d characters", MaxCourseLength)
	}
	if !utf8.ValidString(course) {
		return fmt.Errorf("course must be valid UTF-8")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
