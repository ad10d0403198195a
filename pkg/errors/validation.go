package errors

import (
	"strings"
	"unicode"
)

// maxPathLen bounds report paths accepted from the command line.
const maxPathLen = 4096

// ValidatePath validates a report file path before it is opened.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Existence is not checked here; opening the file reports FILE_NOT_FOUND.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "no dependency report given")
	}
	if len(path) > maxPathLen {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLen)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}

// ValidateMetricName rejects empty or whitespace-padded metric selectors.
// Membership in the supported set is checked by the analysis package.
func ValidateMetricName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMetric, "no metric selected")
	}
	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidMetric, "metric %q contains surrounding whitespace", name)
	}
	return nil
}
