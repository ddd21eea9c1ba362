package httpx

import "strings"

// validationErrorPatterns holds common validation error substrings to classify 400 vs 5xx.
var validationErrorPatterns = []string{ //nolint:gochecknoglobals // read-only pattern list
	"is required",
	"cannot be empty",
	"cannot exceed",
	"must be one of",
}

// isValidationError checks for common validation error patterns to decide 400 vs 5xx.
// This is a stopgap until typed validation errors are adopted across services.
func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range validationErrorPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
