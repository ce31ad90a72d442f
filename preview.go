package fontatlas

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DefaultGridColor is the translucent green used for preview cell grids.
var DefaultGridColor = color.NRGBA{R: 50, G: 205, B: 150, A: 89}

// PreviewOptions configures Preview.
type PreviewOptions struct {
	// Scale is the integer magnification. Values below 1 mean 1.
	Scale int

	// Grid overlays a checkerboard over the cells, which helps when sizing
	// cells and tuning the vertical offset.
	Grid bool

	// GridColor tints every other cell. The zero value means
	// DefaultGridColor.
	GridColor color.NRGBA
}

// Preview returns a magnified copy of an atlas bitmap, optionally with the
// cell grid drawn over it. Pixels are scaled with nearest-neighbour
// sampling so glyph edges stay crisp.
func Preview(src image.Image, extent GridExtent, opts PreviewOptions) *image.NRGBA {
	sb := src.Bounds()
	switch s := src.(type) {
	case *Bitmap:
		src = s.RGBA()
	case image.RGBA64Image:
	default:
		// The scaler only reads RGBA64 sources into an NRGBA destination.
		tmp := image.NewNRGBA(sb)
		draw.Draw(tmp, sb, src, sb.Min, draw.Src)
		src = tmp
	}
	scale := max(opts.Scale, 1)
	dst := image.NewNRGBA(image.Rect(0, 0, sb.Dx()*scale, sb.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)

	if !opts.Grid || extent.Empty() {
		return dst
	}

	gridColor := opts.GridColor
	if gridColor == (color.NRGBA{}) {
		gridColor = DefaultGridColor
	}
	fill := image.NewUniform(gridColor)
	cw, ch := extent.CellWidth*scale, extent.CellHeight*scale

	for y := 0; y < extent.Rows; y++ {
		for x := 0; x < extent.Columns; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			cell := image.Rect(x*cw, y*ch, (x+1)*cw, (y+1)*ch)
			draw.Draw(dst, cell, fill, image.Point{}, draw.Over)
		}
	}
	return dst
}
