package todo

import (
	"strings"
	"unicode/utf8"
)

// Field limits, counted in characters (runes) rather than bytes.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// ValidateTitle trims surrounding whitespace and enforces the 1-200
// character bound, returning the trimmed title.
func ValidateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// ValidateDescription enforces the 0-1000 character bound. Descriptions are
// kept verbatim; the empty string is valid.
func ValidateDescription(raw string) (string, error) {
	if utf8.RuneCountInString(raw) > MaxDescriptionLen {
		return "", ErrDescriptionTooLong
	}
	return raw, nil
}
