package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches CSS hex colors in #rgb and #rrggbb form.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a theme color. Only hex colors are accepted because
// every drawing surface (SVG, raster, canvas, terminal) must understand them.
func ValidateColor(name, value string) error {
	if value == "" {
		return New(ErrCodeInvalidInput, "color %s cannot be empty", name)
	}
	if !hexColorRegex.MatchString(value) {
		return New(ErrCodeInvalidInput, "color %s must be a hex color like #1a1a2e, got %q", name, value)
	}
	return nil
}

// ValidateDimension validates a positive size such as a canvas width or a
// terminal cell height.
func ValidateDimension(name string, value float64) error {
	if value <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %g", name, value)
	}
	return nil
}

// ValidateIndex validates a user-supplied index against a collection length.
// The explorer core treats stale indices as no-ops; hosts use this to report
// bad command-line flags instead.
func ValidateIndex(kind string, index, length int) error {
	if index < 0 || index >= length {
		return New(ErrCodeInvalidInput, "%s index %d out of range [0, %d)", kind, index, length)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateKeyName validates a key string received from a host before it is
// handed to the input mapper. Key names are short, printable identifiers
// like "j", "ArrowDown" or "Escape".
func ValidateKeyName(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}
	if len(key) > 32 {
		return New(ErrCodeInvalidInput, "key name too long (max 32 characters)")
	}
	if strings.ContainsFunc(key, unicode.IsControl) {
		return New(ErrCodeInvalidInput, "key contains control characters")
	}
	return nil
}
