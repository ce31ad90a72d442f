// Package text loads TrueType and OpenType fonts and turns them into glyph
// textures for the atlas baker.
//
// The pipeline has two parts:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF files)
//   - Provider: rasterizes requested glyphs at a pixel size and packs them
//     into a single alpha texture
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("PxPlus_IBM_VGA8.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	font := text.NewProvider(source)
//	if err := font.RequestGlyphs("Hello", 8); err != nil {
//	    log.Fatal(err)
//	}
//	m, ok := font.MetricsFor('H', 8)
//
// Provider implements fontatlas.GlyphMetricsProvider.
//
// # Pluggable Parser Backend
//
// Glyph coverage and naming go through the FontParser interface. Two parsers
// are registered: "ximage" (golang.org/x/image/font/opentype, the default)
// and "gotext" (github.com/go-text/typesetting). Glyph outlines are always
// rasterized with golang.org/x/image.
//
//	source, err := text.NewFontSource(data, text.WithParser("gotext"))
package text
