package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxIDLength bounds label, group and bar identifiers.
const MaxIDLength = 256

// ValidateID validates a label, group or bar identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidScene, "id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "id contains invalid control characters")
		}
	}

	return nil
}

// colorRegex matches #rgb, #rrggbb and #rrggbbaa hex colors and plain CSS
// color keywords.
var colorRegex = regexp.MustCompile(`^(#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]+)$`)

// ValidateColor validates a label color. The empty string is allowed and
// means the renderer default.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidScene, "invalid color: %q", color)
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateRelativePath validates a path that must stay inside a base
// directory, such as a cache entry name. On top of ValidatePath it rejects
// absolute paths, traversal sequences and backslashes.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
