package utils

import (
	"strings"
)

// IsDuplicateKeyError reports whether err is a unique-constraint
// violation. Matches the error text so it works with both PostgreSQL
// and SQLite drivers.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint")
}
