package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MicroTagMaxChars is the character budget for micro-display tags.
// A micro badge is a small circle with no room to truncate or shrink, so
// values beyond this limit are a hard validation failure.
const MicroTagMaxChars = 5

// ValidateMicroTag validates that a micro-display tag value fits its
// character budget. The returned error names the category, the value, and
// the limit so the operator can fix the event's tag definitions.
func ValidateMicroTag(category, value string) error {
	n := utf8.RuneCountInString(value)
	if n > MicroTagMaxChars {
		return New(ErrCodeInvalidTag,
			"micro-tag %q value %q exceeds %d character limit (%d chars); micro-tags must be <=%d chars for circular display",
			category, value, MicroTagMaxChars, n, MicroTagMaxChars)
	}
	return nil
}

// ValidateEventID validates an event identifier for safety and correctness.
// Event IDs become directory names for cached artifacts, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateEventID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidEvent, "event id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidEvent, "event id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEvent, "event id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidEvent, "event id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateHexColor validates a "#RRGGBB" hex color string as used by tag
// category definitions.
func ValidateHexColor(color string) error {
	if len(color) != 7 || color[0] != '#' {
		return New(ErrCodeInvalidTag, "invalid hex color %q (want #RRGGBB)", color)
	}
	for _, r := range color[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return New(ErrCodeInvalidTag, "invalid hex color %q (want #RRGGBB)", color)
		}
	}
	return nil
}
