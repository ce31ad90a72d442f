package fontatlas

import "image"

// UVRect is a rectangle in font-texture space. U grows to the right and V
// grows upwards; (0, 0) is the bottom-left corner of the texture.
type UVRect struct {
	U0, V0 float32 // bottom-left
	U1, V1 float32 // top-right
}

// GlyphMetrics is the render data of one character at one font size.
type GlyphMetrics struct {
	// UV locates the glyph inside the provider's texture.
	UV UVRect

	// Offset is the distance in pixels from the pen origin on the baseline
	// to the bottom-left corner of the glyph bitmap, y up.
	Offset image.Point

	// Size is the pixel width and height of the glyph bitmap.
	Size image.Point

	// Advance is the horizontal advance in whole pixels.
	Advance int
}

// GlyphMetricsProvider is the font seen by the atlas core.
//
// RequestGlyphs must be called for a string before MetricsFor is queried
// for any of its characters: providers may rasterize lazily and may move
// glyphs inside their texture when it grows, which invalidates UVs handed
// out before the call.
type GlyphMetricsProvider interface {
	// HasGlyph reports whether the font can render r.
	HasGlyph(r rune) bool

	// RequestGlyphs makes every renderable character of text resident in
	// the texture at the given size.
	RequestGlyphs(text string, fontSize int) error

	// MetricsFor returns the metrics of a resident glyph. ok is false when
	// the character is missing from the font or was never requested.
	MetricsFor(r rune, fontSize int) (m GlyphMetrics, ok bool)

	// Texture returns the alpha texture the UVs refer to.
	Texture() *image.Alpha
}

// Versioned is implemented by providers whose texture layout can change
// outside a rebuild. The version must change whenever previously returned
// metrics become stale.
type Versioned interface {
	Version() uint64
}
