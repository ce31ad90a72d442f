package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrSourceClosed is returned when a closed FontSource is used.
	ErrSourceClosed = errors.New("text: font source is closed")

	// ErrTextureFull is returned when requested glyphs do not fit in the
	// largest allowed texture.
	ErrTextureFull = errors.New("text: glyph texture full")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("text: font size must be positive")
)

// GlyphError reports a glyph that could not be rasterized.
type GlyphError struct {
	Rune rune
	Size int
	Err  error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("text: glyph %q at %dpx: %v", e.Rune, e.Size, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
