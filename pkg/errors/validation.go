package errors

import (
	"strings"
	"unicode"
)

const (
	maxIDLength       = 256
	maxCategoryLength = 128
)

// ValidateIntervalID validates an interval identifier.
//
// IDs must be non-empty, at most 256 bytes, and free of control characters so
// they can be printed in tables and used in cache keys.
func ValidateIntervalID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "interval id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "interval id too long (max %d characters)", maxIDLength)
	}
	if hasControl(id) {
		return New(ErrCodeInvalidInput, "interval id %q contains control characters", id)
	}
	return nil
}

// ValidateCategory validates a category label.
func ValidateCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "category cannot be empty")
	}
	if len(name) > maxCategoryLength {
		return New(ErrCodeInvalidInput, "category too long (max %d characters)", maxCategoryLength)
	}
	if hasControl(name) {
		return New(ErrCodeInvalidInput, "category %q contains control characters", name)
	}
	return nil
}

// ValidatePath validates a request or output file path.
// Absolute and relative paths are both accepted.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if hasControl(path) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
