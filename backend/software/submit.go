// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/fontatlas"
)

// subpixels is the precision projected vertices are snapped to, per pixel.
const subpixels = 256

// quadTriangles splits a BL, BR, TR, TL quad into two triangles.
var quadTriangles = [2][3]int{{0, 1, 2}, {0, 2, 3}}

// point is a projected vertex in target pixels, y down.
type point struct {
	x, y float32
	u, v float32
}

// viewport maps clip space to target pixels.
type viewport struct {
	m    mgl32.Mat4
	w, h float32
}

func (vp viewport) project(v fontatlas.Vertex) point {
	clip := vp.m.Mul4x1(mgl32.Vec4{v.X, v.Y, 0, 1})
	w := clip.W()
	if w == 0 {
		w = 1
	}
	x := (clip.X()/w + 1) / 2 * vp.w
	y := (1 - clip.Y()/w) / 2 * vp.h
	return point{x: snap(x), y: snap(y), u: v.U, v: v.V}
}

func snap(v float32) float32 {
	return float32(math.Round(float64(v)*subpixels) / subpixels)
}

// Submit draws every quad of mesh into the bound target. The texture is
// sampled with point filtering and clamped at its edges; the sampled alpha,
// scaled by the pixel coverage of the quad, tints with tint and is blended
// over the target.
func (b *Backend) Submit(mesh *fontatlas.Mesh, texture *image.Alpha, tint color.Color, projection mgl32.Mat4) error {
	t, err := b.active()
	if err != nil {
		return err
	}
	if mesh.Len() == 0 {
		return nil
	}
	if texture == nil || texture.Rect.Empty() {
		return ErrMissingTexture
	}

	var c color.NRGBA
	if tint != nil {
		c = color.NRGBAModel.Convert(tint).(color.NRGBA)
	}
	if c.A == 0 {
		return nil
	}

	vp := viewport{m: projection, w: float32(t.width), h: float32(t.height)}
	for _, q := range mesh.Quads() {
		var pts [4]point
		for i, v := range q.Vertices {
			pts[i] = vp.project(v)
		}
		b.drawQuad(t, texture, c, &pts)
	}
	return nil
}

// drawQuad fills both triangles of a quad as one path, so pixels along the
// shared diagonal get full coverage, then shades every covered pixel.
func (b *Backend) drawQuad(t *target, tex *image.Alpha, tint color.NRGBA, p *[4]point) {
	minX, minY := p[0].x, p[0].y
	maxX, maxY := minX, minY
	for _, q := range p[1:] {
		minX, maxX = min(minX, q.x), max(maxX, q.x)
		minY, maxY = min(minY, q.y), max(maxY, q.y)
	}
	bounds := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
	if bounds.Empty() || !bounds.Overlaps(image.Rect(0, 0, t.width, t.height)) {
		return
	}

	w, h := bounds.Dx(), bounds.Dy()
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)

	b.raster.Reset(w, h)
	b.raster.DrawOp = draw.Src
	for _, tri := range quadTriangles {
		a, c, d := p[tri[0]], p[tri[1]], p[tri[2]]
		b.raster.MoveTo(a.x-ox, a.y-oy)
		b.raster.LineTo(c.x-ox, c.y-oy)
		b.raster.LineTo(d.x-ox, d.y-oy)
		b.raster.ClosePath()
	}
	mask := b.coverageMask(w, h)
	b.raster.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	tintA := float32(tint.A) / 0xff
	tr, tg, tb := float32(tint.R)/0xff, float32(tint.G)/0xff, float32(tint.B)/0xff

	for y := range h {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, cov := range row {
			if cov == 0 {
				continue
			}
			u, v := interpolateUV(p, ox+float32(x)+0.5, oy+float32(y)+0.5)
			a := tintA * float32(sample(tex, u, v)) / 0xff * float32(cov) / 0xff
			t.blend(bounds.Min.X+x, bounds.Min.Y+y, tr*a, tg*a, tb*a, a)
		}
	}
}

// coverageMask returns a reused w x h alpha buffer.
func (b *Backend) coverageMask(w, h int) *image.Alpha {
	n := w * h
	if b.mask == nil || cap(b.mask.Pix) < n {
		b.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return b.mask
	}
	b.mask.Pix = b.mask.Pix[:n]
	b.mask.Stride = w
	b.mask.Rect = image.Rect(0, 0, w, h)
	return b.mask
}

// interpolateUV returns the texture coordinate at (x, y), interpolated in
// whichever triangle of the quad contains the point.
func interpolateUV(p *[4]point, x, y float32) (u, v float32) {
	const eps = -1e-4

	best := -1
	var bw [3]float32
	bestMin := float32(math.Inf(-1))
	for i, tri := range quadTriangles {
		w0, w1, w2, ok := barycentric(p[tri[0]], p[tri[1]], p[tri[2]], x, y)
		if !ok {
			continue
		}
		m := min(w0, w1, w2)
		if m >= eps {
			best, bw = i, [3]float32{w0, w1, w2}
			break
		}
		if m > bestMin {
			best, bw, bestMin = i, [3]float32{w0, w1, w2}, m
		}
	}
	if best < 0 {
		return p[0].u, p[0].v
	}

	tri := quadTriangles[best]
	a, c, d := p[tri[0]], p[tri[1]], p[tri[2]]
	u = bw[0]*a.u + bw[1]*c.u + bw[2]*d.u
	v = bw[0]*a.v + bw[1]*c.v + bw[2]*d.v
	return u, v
}

// barycentric returns the weights of (x, y) relative to triangle abc.
// It reports false for degenerate triangles.
func barycentric(a, b, c point, x, y float32) (w0, w1, w2 float32, ok bool) {
	d := (b.y-c.y)*(a.x-c.x) + (c.x-b.x)*(a.y-c.y)
	if d == 0 {
		return 0, 0, 0, false
	}
	w0 = ((b.y-c.y)*(x-c.x) + (c.x-b.x)*(y-c.y)) / d
	w1 = ((c.y-a.y)*(x-c.x) + (a.x-c.x)*(y-c.y)) / d
	return w0, w1, 1 - w0 - w1, true
}

// sample returns the texel under (u, v), with v pointing up from the
// bottom row of the texture.
func sample(tex *image.Alpha, u, v float32) uint8 {
	tw, th := tex.Rect.Dx(), tex.Rect.Dy()
	tx := clamp(int(math.Floor(float64(u*float32(tw)))), 0, tw-1)
	ty := clamp(int(math.Floor(float64((1-v)*float32(th)))), 0, th-1)
	return tex.Pix[tex.PixOffset(tex.Rect.Min.X+tx, tex.Rect.Min.Y+ty)]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
