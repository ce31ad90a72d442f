package fontatlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeFont covers a fixed set of runes. Every covered glyph is a 4x6 block
// of the fully opaque 16x16 texture, one pixel right of the pen.
type fakeFont struct {
	covered    map[rune]bool
	texture    *image.Alpha
	requests   []string
	requestErr error
	version    uint64
}

func newFakeFont(covered string) *fakeFont {
	f := &fakeFont{
		covered: make(map[rune]bool),
		texture: image.NewAlpha(image.Rect(0, 0, 16, 16)),
	}
	for _, r := range covered {
		f.covered[r] = true
	}
	draw.Draw(f.texture, f.texture.Rect, image.Opaque, image.Point{}, draw.Src)
	return f
}

var fakeGlyph = GlyphMetrics{
	UV:      UVRect{U0: 0, V0: 0, U1: 0.25, V1: 0.375},
	Offset:  image.Pt(1, 0),
	Size:    image.Pt(4, 6),
	Advance: 6,
}

func (f *fakeFont) HasGlyph(r rune) bool {
	return f.covered[r]
}

func (f *fakeFont) RequestGlyphs(text string, _ int) error {
	f.requests = append(f.requests, text)
	return f.requestErr
}

func (f *fakeFont) MetricsFor(r rune, _ int) (GlyphMetrics, bool) {
	if !f.covered[r] {
		return GlyphMetrics{}, false
	}
	if r == ' ' {
		return GlyphMetrics{Advance: 6}, true
	}
	return fakeGlyph, true
}

func (f *fakeFont) Texture() *image.Alpha {
	return f.texture
}

func (f *fakeFont) Version() uint64 {
	return f.version
}

// fakeBackend keeps targets as plain RGBA images. Submit fills every quad
// rectangle with the tint, which is enough to observe what was drawn.
type fakeBackend struct {
	targets map[TargetHandle]*image.RGBA
	next    TargetHandle
	bound   TargetHandle

	created  int
	released []TargetHandle
	submits  int
	calls    int

	createErr error
	submitErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{targets: make(map[TargetHandle]*image.RGBA)}
}

var errFakeTarget = errors.New("fake: no such target")

func (b *fakeBackend) CreateTarget(w, h int) (TargetHandle, error) {
	b.calls++
	if b.createErr != nil {
		return 0, b.createErr
	}
	b.next++
	b.created++
	b.targets[b.next] = image.NewRGBA(image.Rect(0, 0, w, h))
	// Fresh targets hold garbage; a missing Clear shows up in tests.
	draw.Draw(b.targets[b.next], b.targets[b.next].Rect, image.NewUniform(color.RGBA{R: 7, G: 7, B: 7, A: 7}), image.Point{}, draw.Src)
	return b.next, nil
}

func (b *fakeBackend) ReleaseTarget(h TargetHandle) error {
	b.calls++
	if _, ok := b.targets[h]; !ok {
		return fmt.Errorf("%w: %d", errFakeTarget, h)
	}
	delete(b.targets, h)
	b.released = append(b.released, h)
	if b.bound == h {
		b.bound = 0
	}
	return nil
}

func (b *fakeBackend) TargetSize(h TargetHandle) (image.Point, bool) {
	t, ok := b.targets[h]
	if !ok {
		return image.Point{}, false
	}
	return t.Rect.Size(), true
}

func (b *fakeBackend) Bind(h TargetHandle) error {
	b.calls++
	if _, ok := b.targets[h]; h != 0 && !ok {
		return fmt.Errorf("%w: %d", errFakeTarget, h)
	}
	b.bound = h
	return nil
}

func (b *fakeBackend) ActiveTarget() TargetHandle {
	return b.bound
}

func (b *fakeBackend) Clear(c color.Color) error {
	b.calls++
	t, ok := b.targets[b.bound]
	if !ok {
		return errFakeTarget
	}
	draw.Draw(t, t.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

func (b *fakeBackend) Submit(mesh *Mesh, _ *image.Alpha, tint color.Color, _ mgl32.Mat4) error {
	b.calls++
	if b.submitErr != nil {
		return b.submitErr
	}
	t, ok := b.targets[b.bound]
	if !ok {
		return errFakeTarget
	}
	b.submits++
	h := t.Rect.Dy()
	for _, q := range mesh.Quads() {
		// Mesh space is y-up; images are y-down.
		bl, tr := q.Vertices[0], q.Vertices[2]
		r := image.Rect(int(bl.X), h-int(tr.Y), int(tr.X), h-int(bl.Y))
		draw.Draw(t, r, image.NewUniform(tint), image.Point{}, draw.Src)
	}
	return nil
}

func (b *fakeBackend) Readback(h TargetHandle) (*image.RGBA, error) {
	b.calls++
	t, ok := b.targets[h]
	if !ok {
		return nil, errFakeTarget
	}
	out := image.NewRGBA(t.Rect)
	copy(out.Pix, t.Pix)
	return out, nil
}

// testConfig is the default configuration with glyphs and 8x8 cells.
func testConfig(font GlyphMetricsProvider, glyphs string) Config {
	cfg := DefaultConfig(font)
	cfg.Glyphs = glyphs
	return cfg
}

func unregisterBackend(name string) {
	backendsMu.Lock()
	delete(backends, name)
	backendsMu.Unlock()
}
