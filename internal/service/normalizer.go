package service

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	emailRegex      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const (
	maxNameLength        = 100
	maxSymptomTypeLength = 100
	maxNotesLength       = 2000
	maxChatMessageLength = 4000
)

// normalizeEmail lowercases and trims the provided email.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func validEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// sanitizeString collapses whitespace and trims the result.
func sanitizeString(value string) string {
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// symptomKey folds a free-text symptom name into the snake_case identifiers
// used by the client apps, e.g. "Breast Tenderness" -> "breast_tenderness".
func symptomKey(value string) string {
	value = strings.ToLower(sanitizeString(value))
	value = strings.NewReplacer(" ", "_", "-", "_").Replace(value)
	return value
}

// truncate cuts value to at most n runes.
func truncate(value string, n int) string {
	r := []rune(value)
	if len(r) <= n {
		return value
	}
	return string(r[:n])
}
