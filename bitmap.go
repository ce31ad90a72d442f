package fontatlas

import (
	"image"
	"image/color"
)

// Bitmap is a read-back atlas: premultiplied RGBA pixels, top row first.
// Bitmap implements image.RGBA64Image and can be handed to any image
// encoder.
type Bitmap struct {
	img *image.RGBA
}

// NewBitmap allocates a transparent width x height bitmap.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int {
	return b.img.Rect.Dy()
}

// Size returns the bitmap dimensions.
func (b *Bitmap) Size() image.Point {
	return b.img.Rect.Size()
}

// RGBA returns the underlying image. The image shares memory with the
// bitmap and is overwritten by the next rasterization into it.
func (b *Bitmap) RGBA() *image.RGBA {
	return b.img
}

// Clone returns a deep copy that later rasterizations do not touch.
func (b *Bitmap) Clone() *Bitmap {
	c := NewBitmap(b.Width(), b.Height())
	copy(c.img.Pix, b.img.Pix)
	return c
}

// RGBAAt returns the pixel at (x, y).
func (b *Bitmap) RGBAAt(x, y int) color.RGBA {
	return b.img.RGBAAt(x, y)
}

// RGBA64At implements the image.RGBA64Image interface.
func (b *Bitmap) RGBA64At(x, y int) color.RGBA64 {
	return b.img.RGBA64At(x, y)
}

// Opaque reports whether every pixel is fully opaque.
func (b *Bitmap) Opaque() bool {
	return b.img.Opaque()
}

// At implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	return b.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (b *Bitmap) Bounds() image.Rectangle {
	return b.img.Rect
}

// ColorModel implements the image.Image interface.
func (b *Bitmap) ColorModel() color.Model {
	return color.RGBAModel
}

// copyFrom overwrites b with src, row by row. src must have b's size.
func (b *Bitmap) copyFrom(src *image.RGBA) {
	w := b.Width() * 4
	for y := 0; y < b.Height(); y++ {
		so := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		do := b.img.PixOffset(0, y)
		copy(b.img.Pix[do:do+w], src.Pix[so:so+w])
	}
}
