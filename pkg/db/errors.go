package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. Covers the sqlite and postgres error texts; when
// columnName is provided, the helper looks for it in the error message.
func IsUniqueViolation(err error, columnName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") &&
		!strings.Contains(msg, "duplicate key value") {
		return false
	}
	if columnName != "" {
		return strings.Contains(msg, columnName)
	}
	return true
}
