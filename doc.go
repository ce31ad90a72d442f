// Package fontatlas bakes bitmap font atlases.
//
// # Overview
//
// Given a font, a string of characters and a cell size, fontatlas decides
// which characters the font can render, lays them out on a fixed-column
// grid, builds a textured quad per glyph and rasterizes the quads into an
// off-screen target whose pixels are read back into a [Bitmap]:
//
//	glyph string -> Resolve -> ComputeExtent -> MeshBuilder.Build -> Rasterizer.Rasterize -> Bitmap
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fontatlas"
//	    "github.com/gogpu/fontatlas/backend/software"
//	    "github.com/gogpu/fontatlas/encode"
//	    "github.com/gogpu/fontatlas/text"
//	)
//
//	src, _ := text.NewFontSourceFromFile("font.ttf")
//	font := text.NewProvider(src)
//
//	gen := fontatlas.NewGenerator(software.New())
//	defer gen.Close()
//
//	atlas, err := gen.Rebuild(fontatlas.DefaultConfig(font))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = encode.WriteFile("atlas.png", atlas.Bitmap)
//
// # Coordinate System
//
// Meshes live in atlas pixel space with the origin at the bottom-left and
// y growing upwards; the rasterizer projects them with an orthographic
// projection spanning the whole atlas. Cell row 0 is the top band of the
// atlas, so glyph 0 ends up in the top-left cell of the saved image.
// Font-texture UVs use the same convention: (0, 0) is the bottom-left of
// the texture.
//
// # Collaborators
//
// The core only talks to a [GlyphMetricsProvider] (implemented by
// text.Provider) and a [RasterizationBackend] (implemented by
// backend/software). Both can be replaced.
package fontatlas
