// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// target is a CPU-backed render target.
//
// Pixels are premultiplied 8-bit RGBA or BGRA, depending on format, with
// row 0 at the top.
type target struct {
	width  int
	height int
	format gputypes.TextureFormat
	pix    []byte
	stride int
}

func newTarget(width, height int, format gputypes.TextureFormat) *target {
	return &target{
		width:  width,
		height: height,
		format: format,
		pix:    make([]byte, width*height*4),
		stride: width * 4,
	}
}

// Size returns the target dimensions.
func (t *target) Size() image.Point {
	return image.Pt(t.width, t.height)
}

// channels returns the byte offsets of red and blue within a pixel.
func (t *target) channels() (r, b int) {
	if t.format == gputypes.TextureFormatBGRA8Unorm {
		return 2, 0
	}
	return 0, 2
}

// Clear fills the entire target with c.
func (t *target) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	ri, bi := t.channels()

	var px [4]byte
	px[ri], px[1], px[bi], px[3] = rgba.R, rgba.G, rgba.B, rgba.A

	if len(t.pix) == 0 {
		return
	}
	copy(t.pix, px[:])
	// Double the filled prefix until the buffer is full.
	for n := 4; n < len(t.pix); n *= 2 {
		copy(t.pix[n:], t.pix[:n])
	}
}

// blend composites a premultiplied source pixel over (x, y).
// Coordinates outside the target are ignored.
func (t *target) blend(x, y int, r, g, b, a float32) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height || a <= 0 {
		return
	}
	ri, bi := t.channels()
	off := y*t.stride + x*4
	p := t.pix[off : off+4 : off+4]

	inv := 1 - a
	p[ri] = unit8(r + float32(p[ri])/0xff*inv)
	p[1] = unit8(g + float32(p[1])/0xff*inv)
	p[bi] = unit8(b + float32(p[bi])/0xff*inv)
	p[3] = unit8(a + float32(p[3])/0xff*inv)
}

// unit8 converts a [0, 1] value to a rounded byte.
func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

// Image copies the target into a new *image.RGBA, converting BGRA to RGBA.
func (t *target) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	if t.format != gputypes.TextureFormatBGRA8Unorm {
		copy(img.Pix, t.pix)
		return img
	}
	for i := 0; i < len(t.pix); i += 4 {
		img.Pix[i] = t.pix[i+2]   // R <- B
		img.Pix[i+1] = t.pix[i+1] // G <- G
		img.Pix[i+2] = t.pix[i]   // B <- R
		img.Pix[i+3] = t.pix[i+3] // A <- A
	}
	return img
}
