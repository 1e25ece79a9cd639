package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidateEntityName checks that an entity or module name is safe to embed in
// an output file name.
//
// HDL identifiers never contain these characters, so a failure here means the
// parser produced garbage or the name came from an untrusted request:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateEntityName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "entity name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "entity name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "entity name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "entity name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFormat checks an output format against the supported set.
func ValidateFormat(format string, valid map[string]bool) error {
	if !valid[format] {
		names := make([]string, 0, len(valid))
		for f := range valid {
			names = append(names, f)
		}
		slices.Sort(names)
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(names, ", "))
	}
	return nil
}
