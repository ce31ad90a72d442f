package fontatlas

import (
	"fmt"
	"strings"
)

// UnsupportedGlyphPolicy selects what happens to characters the active font
// cannot render.
type UnsupportedGlyphPolicy int

const (
	// PolicyFallback leaves the string untouched; the glyph provider decides
	// what (if anything) is drawn for a missing character.
	PolicyFallback UnsupportedGlyphPolicy = iota

	// PolicyEmpty replaces every unsupported character with a space, keeping
	// every other glyph in the cell its string index maps to.
	PolicyEmpty

	// PolicyRemove deletes unsupported characters; the remaining glyphs are
	// laid out against the shorter string.
	PolicyRemove
)

// String returns the lower-case policy name.
func (p UnsupportedGlyphPolicy) String() string {
	switch p {
	case PolicyFallback:
		return "fallback"
	case PolicyEmpty:
		return "empty"
	case PolicyRemove:
		return "remove"
	default:
		return fmt.Sprintf("UnsupportedGlyphPolicy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name as produced by String. Matching is
// case-insensitive.
func ParsePolicy(s string) (UnsupportedGlyphPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fallback":
		return PolicyFallback, nil
	case "empty":
		return PolicyEmpty, nil
	case "remove":
		return PolicyRemove, nil
	}
	return PolicyFallback, fmt.Errorf("fontatlas: unknown unsupported-glyph policy %q", s)
}
