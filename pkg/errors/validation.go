package errors

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	minCutoff = 1
	maxCutoff = 5
)

// ValidateRunName validates a run name for safety.
// The name becomes part of every input and output filename, so it must be a
// plain basename.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden names (leading dot)
//   - Maximum length of 200 characters
func ValidateRunName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "run name cannot be empty")
	}

	if len(name) > 200 {
		return New(ErrCodeInvalidName, "run name too long (max 200 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "run name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "run name contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "run name cannot start with a dot")
	}

	return nil
}

// ValidateCutoff parses and validates a priority cutoff given as text.
// The cutoff is inclusive and must lie in 1..5.
func ValidateCutoff(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, Wrap(ErrCodeInvalidCutoff, err, "cutoff %q is not an integer", s)
	}
	if err := ValidateCutoffValue(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateCutoffValue checks that an already parsed cutoff lies in 1..5.
func ValidateCutoffValue(v int) error {
	if v < minCutoff || v > maxCutoff {
		return New(ErrCodeInvalidCutoff, "cutoff %d out of range [%d, %d]", v, minCutoff, maxCutoff)
	}
	return nil
}

// ValidatePath validates a directory or file path given on the command line
// or in a config file.
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

// rankdirRegex matches the layout directions Graphviz accepts.
var rankdirRegex = regexp.MustCompile(`^(TB|BT|LR|RL)$`)

// ValidateRankdir validates a Graphviz layout direction.
func ValidateRankdir(rankdir string) error {
	if !rankdirRegex.MatchString(rankdir) {
		return New(ErrCodeInvalidInput, "invalid rankdir %q (want TB, BT, LR or RL)", rankdir)
	}
	return nil
}
