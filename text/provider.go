package text

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/fontatlas/internal/cache"
	"golang.org/x/image/font"
)

// glyphKey identifies a rasterized glyph.
type glyphKey struct {
	r    rune
	size int
}

// residentGlyph is a glyph packed into the texture.
type residentGlyph struct {
	img  *GlyphImage
	rect image.Rectangle // texel rectangle, top-down
}

// Provider rasterizes glyphs of a FontSource on request and packs them into
// one alpha texture. It implements fontatlas.GlyphMetricsProvider and
// fontatlas.Versioned.
//
// The texture starts small and doubles when requested glyphs no longer
// fit, up to the configured maximum. Every change of the texture bumps the
// version, which invalidates metrics handed out earlier.
//
// Provider methods are safe for concurrent use. The image returned by
// Texture is written by later RequestGlyphs and Reset calls, so it must not
// be read while another goroutine requests glyphs.
type Provider struct {
	source *FontSource
	config providerConfig

	mu       sync.Mutex
	faces    map[int]font.Face
	masks    *cache.Cache[glyphKey, *GlyphImage]
	resident map[glyphKey]*residentGlyph
	order    []glyphKey // insertion order, used when repacking
	packer   *shelfPacker
	texture  *image.Alpha
	version  uint64
}

var (
	_ fontatlas.GlyphMetricsProvider = (*Provider)(nil)
	_ fontatlas.Versioned            = (*Provider)(nil)
)

// NewProvider creates a glyph provider for source.
func NewProvider(source *FontSource, opts ...ProviderOption) *Provider {
	config := defaultProviderConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.maxSize = max(config.maxSize, config.initialSize)

	return &Provider{
		source:   source,
		config:   config,
		faces:    make(map[int]font.Face),
		masks:    cache.New[glyphKey, *GlyphImage](config.cacheLimit),
		resident: make(map[glyphKey]*residentGlyph),
		packer:   newShelfPacker(config.initialSize, config.initialSize, config.padding),
		texture:  image.NewAlpha(image.Rect(0, 0, config.initialSize, config.initialSize)),
	}
}

// Source returns the font source the provider draws from.
func (p *Provider) Source() *FontSource {
	return p.source
}

// HasGlyph reports whether the font covers r.
func (p *Provider) HasGlyph(r rune) bool {
	return p.source.HasGlyph(r)
}

// RequestGlyphs makes every covered rune of text resident at fontSize.
// Runes the font lacks are skipped. When the texture has to grow, all
// resident glyphs are repacked.
func (p *Provider) RequestGlyphs(text string, fontSize int) error {
	if fontSize <= 0 {
		return ErrInvalidSize
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	added := 0
	for _, r := range text {
		key := glyphKey{r: r, size: fontSize}
		if _, ok := p.resident[key]; ok || !p.source.HasGlyph(r) {
			continue
		}

		img, err := p.rasterize(key)
		if err != nil {
			return err
		}
		if img == nil {
			continue
		}

		if err := p.place(key, img); err != nil {
			if added > 0 {
				p.version++
			}
			return err
		}
		added++
	}

	if added > 0 {
		p.version++
		fontatlas.Logger().Debug("text: glyphs requested",
			"size", fontSize, "added", added, "resident", len(p.resident),
			"texture", p.texture.Rect.Dx(), "utilization", p.packer.utilization())
	}
	return nil
}

// rasterize returns the cached mask of key, rendering it on a miss.
// A nil image means the face has no glyph for the rune.
// Caller must hold p.mu.
func (p *Provider) rasterize(key glyphKey) (*GlyphImage, error) {
	img, err := p.masks.GetOrCreate(key, func() (*GlyphImage, error) {
		face, err := p.face(key.size)
		if err != nil {
			return nil, err
		}
		img, ok := RasterizeGlyph(face, key.r, p.config.alphaThreshold)
		if !ok {
			return nil, nil
		}
		return img, nil
	})
	if err != nil {
		return nil, &GlyphError{Rune: key.r, Size: key.size, Err: err}
	}
	return img, nil
}

// face returns the rasterizing face for size, creating it once.
// Caller must hold p.mu.
func (p *Provider) face(size int) (font.Face, error) {
	if f, ok := p.faces[size]; ok {
		return f, nil
	}
	otf, err := p.source.outlines()
	if err != nil {
		return nil, err
	}
	f, err := newFace(otf, size)
	if err != nil {
		return nil, fmt.Errorf("text: create face: %w", err)
	}
	p.faces[size] = f
	return f, nil
}

// place packs img into the texture, growing it when needed.
// Caller must hold p.mu.
func (p *Provider) place(key glyphKey, img *GlyphImage) error {
	w, h := img.Mask.Rect.Dx(), img.Mask.Rect.Dy()
	if rect, ok := p.packer.allocate(w, h); ok {
		p.store(key, img, rect)
		return nil
	}

	for size := p.texture.Rect.Dx() * 2; size <= p.config.maxSize; size *= 2 {
		if p.repack(size, key, img) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q at %dpx does not fit in %dx%d",
		ErrTextureFull, key.r, key.size, p.config.maxSize, p.config.maxSize)
}

// repack tries to lay out every resident glyph plus the new one on a
// size x size texture. On success the new texture replaces the old one.
// Caller must hold p.mu.
func (p *Provider) repack(size int, key glyphKey, img *GlyphImage) bool {
	packer := newShelfPacker(size, size, p.config.padding)
	rects := make([]image.Rectangle, len(p.order))
	for i, k := range p.order {
		mask := p.resident[k].img.Mask
		rect, ok := packer.allocate(mask.Rect.Dx(), mask.Rect.Dy())
		if !ok {
			return false
		}
		rects[i] = rect
	}
	rect, ok := packer.allocate(img.Mask.Rect.Dx(), img.Mask.Rect.Dy())
	if !ok {
		return false
	}

	fontatlas.Logger().Debug("text: growing glyph texture",
		"from", p.texture.Rect.Dx(), "to", size, "glyphs", len(p.order)+1)

	p.packer = packer
	p.texture = image.NewAlpha(image.Rect(0, 0, size, size))
	for i, k := range p.order {
		g := p.resident[k]
		g.rect = rects[i]
		p.blit(g)
	}
	p.store(key, img, rect)
	return true
}

// store records a resident glyph and copies its mask into the texture.
// Caller must hold p.mu.
func (p *Provider) store(key glyphKey, img *GlyphImage, rect image.Rectangle) {
	g := &residentGlyph{img: img, rect: rect}
	p.resident[key] = g
	p.order = append(p.order, key)
	p.blit(g)
}

func (p *Provider) blit(g *residentGlyph) {
	if g.rect.Empty() {
		return
	}
	draw.Draw(p.texture, g.rect, g.img.Mask, image.Point{}, draw.Src)
}

// MetricsFor returns the placement of a resident glyph. Offset is measured
// from the pen origin on the baseline to the bottom-left corner of the
// glyph, with y up; UV uses V up with (0, 0) at the texture's bottom-left.
func (p *Provider) MetricsFor(r rune, fontSize int) (fontatlas.GlyphMetrics, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	g, ok := p.resident[glyphKey{r: r, size: fontSize}]
	if !ok {
		return fontatlas.GlyphMetrics{}, false
	}

	tw := float32(p.texture.Rect.Dx())
	th := float32(p.texture.Rect.Dy())
	return fontatlas.GlyphMetrics{
		UV: fontatlas.UVRect{
			U0: float32(g.rect.Min.X) / tw,
			V0: 1 - float32(g.rect.Max.Y)/th,
			U1: float32(g.rect.Max.X) / tw,
			V1: 1 - float32(g.rect.Min.Y)/th,
		},
		Offset:  image.Pt(g.img.Bounds.Min.X, -g.img.Bounds.Max.Y),
		Size:    g.img.Bounds.Size(),
		Advance: g.img.Advance,
	}, true
}

// Texture returns the current glyph texture. New glyphs are drawn into it
// in place; growing the texture replaces it with a new image.
func (p *Provider) Texture() *image.Alpha {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.texture
}

// Version implements fontatlas.Versioned.
func (p *Provider) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Descent returns the distance in whole pixels from the baseline down to
// the lowest point of the font at fontSize. Placing the baseline this far
// above the bottom of a cell keeps descenders inside it.
func (p *Provider) Descent(fontSize int) (int, error) {
	if fontSize <= 0 {
		return 0, ErrInvalidSize
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	face, err := p.face(fontSize)
	if err != nil {
		return 0, err
	}
	return face.Metrics().Descent.Ceil(), nil
}

// Resident returns the number of glyphs in the texture.
func (p *Provider) Resident() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.resident)
}

// Reset drops every resident glyph and shrinks the texture back to its
// initial size. Rasterized masks stay cached.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	clear(p.resident)
	p.order = p.order[:0]
	size := p.config.initialSize
	p.packer.reset(size, size)
	p.texture = image.NewAlpha(image.Rect(0, 0, size, size))
	p.version++
}

// Close releases the rasterizing faces. The FontSource is not closed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for size, f := range p.faces {
		_ = f.Close()
		delete(p.faces, size)
	}
	p.masks.Clear()
	return nil
}
