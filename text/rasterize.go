package text

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// GlyphImage represents a rasterized glyph.
// This contains the alpha mask and positioning information.
type GlyphImage struct {
	// Mask is the alpha coverage of the glyph, with its origin at (0, 0).
	// It is empty for glyphs without ink, such as the space.
	Mask *image.Alpha

	// Bounds is the mask rectangle relative to the pen origin on the
	// baseline, in pixels with y growing downwards.
	Bounds image.Rectangle

	// Advance width in whole pixels.
	Advance int
}

// newFace creates a rasterizing face for size pixels per em.
func newFace(f *opentype.Font, size int) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingFull,
	})
}

// RasterizeGlyph renders r with face to an alpha mask. Coverage values at
// or above threshold become opaque and the rest transparent, unless
// threshold is zero. It reports false when the face has no glyph for r.
func RasterizeGlyph(face font.Face, r rune, threshold uint8) (*GlyphImage, bool) {
	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return nil, false
	}

	// Snap the fractional bounds outwards to whole pixels.
	rect := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)

	mask := image.NewAlpha(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	if !rect.Empty() {
		d := &font.Drawer{
			Dst:  mask,
			Src:  image.Opaque,
			Face: face,
			// Put the pen origin where the top-left of rect lands at (0, 0).
			Dot: fixed.Point26_6{X: fixed.I(-rect.Min.X), Y: fixed.I(-rect.Min.Y)},
		}
		d.DrawString(string(r))

		if threshold > 0 {
			binarize(mask, threshold)
		}
	}

	return &GlyphImage{
		Mask:    mask,
		Bounds:  rect,
		Advance: advance.Round(),
	}, true
}

func binarize(mask *image.Alpha, threshold uint8) {
	for i, a := range mask.Pix {
		if a >= threshold {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
}
