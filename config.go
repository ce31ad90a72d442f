package fontatlas

import (
	"image"
	"image/color"
	"reflect"

	"github.com/gogpu/fontatlas/charset"
)

// Default configuration values, matching a classic 8x8 CP437 tile sheet.
const (
	DefaultFontSize       = 8
	DefaultCellSize       = 8
	DefaultColumns        = 16
	DefaultVerticalOffset = 1
)

// Config holds every input of one atlas rebuild. Config is comparable:
// two equal configs with an unchanged font texture produce the same atlas.
type Config struct {
	// Font supplies glyph coverage, metrics and the glyph texture. Its
	// dynamic type must be comparable, which Validate checks; providers
	// are normally pointers.
	Font GlyphMetricsProvider

	// FontSize is the size glyphs are requested at, in pixels per em.
	FontSize int

	// Glyphs is the characters to place, in cell order.
	Glyphs string

	// CellSize is the pixel size of one atlas cell.
	CellSize image.Point

	// Columns is the maximum number of cells per row.
	Columns int

	// VerticalOffset shifts every glyph up by this many pixels. The right
	// value depends on the font; 1 suits most 8px fonts.
	VerticalOffset int

	// Policy decides what happens to characters the font lacks.
	Policy UnsupportedGlyphPolicy

	// Background fills the atlas before glyphs are drawn.
	Background color.NRGBA

	// Foreground tints the glyph coverage.
	Foreground color.NRGBA
}

// DefaultConfig returns the default configuration for font: Code Page 437
// at 8px in 8x8 cells, 16 columns, white on black, unsupported characters
// replaced by blanks.
func DefaultConfig(font GlyphMetricsProvider) Config {
	return Config{
		Font:           font,
		FontSize:       DefaultFontSize,
		Glyphs:         charset.CodePage437(),
		CellSize:       image.Pt(DefaultCellSize, DefaultCellSize),
		Columns:        DefaultColumns,
		VerticalOffset: DefaultVerticalOffset,
		Policy:         PolicyEmpty,
		Background:     Black,
		Foreground:     White,
	}
}

// Validate reports the first invalid field of c as a *ConfigError.
func (c Config) Validate() error {
	if c.Font == nil {
		return &ConfigError{Field: "Font", Reason: "must be set", Err: ErrNilFont}
	}
	if t := reflect.TypeOf(c.Font); !t.Comparable() {
		return &ConfigError{Field: "Font", Reason: "provider type " + t.String() + " is not comparable"}
	}
	if c.FontSize <= 0 {
		return &ConfigError{Field: "FontSize", Reason: "must be positive"}
	}
	if c.CellSize.X <= 0 || c.CellSize.Y <= 0 {
		return &ConfigError{Field: "CellSize", Reason: "width and height must be positive"}
	}
	if c.Columns <= 0 {
		return &ConfigError{Field: "Columns", Reason: "must be positive"}
	}
	switch c.Policy {
	case PolicyFallback, PolicyEmpty, PolicyRemove:
	default:
		return &ConfigError{Field: "Policy", Reason: "unknown policy " + c.Policy.String()}
	}
	return nil
}

// WithColors returns a copy of c using the given colors.
func (c Config) WithColors(background, foreground color.Color) Config {
	c.Background = toNRGBA(background)
	c.Foreground = toNRGBA(foreground)
	return c
}
