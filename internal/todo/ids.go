package todo

import (
	"fmt"
	"regexp"
	"strings"
)

// idPattern matches the accepted id shape: a "T" prefix (either case)
// followed by one or more digits.
var idPattern = regexp.MustCompile(`^[Tt][0-9]+$`)

// IDGenerator produces sequential task identifiers. The zero value is ready
// to use; the first call to Next returns "T001". A generator never resets
// and never hands out the same id twice, even after the owning task is
// deleted.
type IDGenerator struct {
	counter int
}

// Next advances the counter and returns the new identifier.
func (g *IDGenerator) Next() string {
	g.counter++
	return FormatID(g.counter)
}

// FormatID renders a counter value as a task id. Values up to 999 are
// zero-padded to three digits (T001..T999); larger values are rendered
// without padding (T1000, T1001, ...).
func FormatID(n int) string {
	return fmt.Sprintf("T%03d", n)
}

// NormalizeID validates raw against the id format and returns the canonical
// uppercase form. Normalization never re-pads: "t1" becomes "T1", which is a
// different id than "T001". Returns ErrInvalidID when raw does not match.
func NormalizeID(raw string) (string, error) {
	if !idPattern.MatchString(raw) {
		return "", ErrInvalidID
	}
	return strings.ToUpper(raw), nil
}
