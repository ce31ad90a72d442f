package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
)

// gotextParser implements FontParser using github.com/go-text/typesetting.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte) (ParsedFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &gotextParsedFont{face: face}, nil
}

// gotextParsedFont implements ParsedFont on top of a go-text face.
// Naming tables are not exposed by the face, so the source falls back to
// the name found by the rasterizing font.
type gotextParsedFont struct {
	face *font.Face
}

// Name implements ParsedFont.Name.
func (f *gotextParsedFont) Name() string { return "" }

// FullName implements ParsedFont.FullName.
func (f *gotextParsedFont) FullName() string { return "" }

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *gotextParsedFont) UnitsPerEm() int {
	return int(f.face.Upem())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *gotextParsedFont) GlyphIndex(r rune) uint16 {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return uint16(gid) //nolint:gosec // glyph ids of sfnt fonts fit in 16 bits
}
