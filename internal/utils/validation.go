package utils

import (
	"regexp"
	"strings"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// MaxNameLength bounds the optional display name.
const MaxNameLength = 150

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// FieldErrors collects validation messages keyed by request field.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed")
	for field := range fe {
		sb.WriteString(": ")
		sb.WriteString(field)
	}
	return sb.String()
}

// NormalizeEmail lowercases and trims an email address. All lookups and
// storage use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the (already normalized) address looks like a
// deliverable email.
func ValidEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// ValidOTPCode reports whether code is exactly `length` digits.
func ValidOTPCode(code string, length int) bool {
	return len(code) == length && digitsOnly.MatchString(code)
}
