package fontatlas

import (
	"fmt"
	"unicode/utf8"
)

// Stage is a step of the rebuild cycle.
type Stage int

const (
	// StageIdle means no rebuild is in progress.
	StageIdle Stage = iota
	// StageLayoutComputed means the glyph string is resolved and laid out.
	StageLayoutComputed
	// StageMeshBuilt means the mesh for the layout exists.
	StageMeshBuilt
	// StageRasterized means the mesh has been drawn and read back.
	StageRasterized
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageLayoutComputed:
		return "layout-computed"
	case StageMeshBuilt:
		return "mesh-built"
	case StageRasterized:
		return "rasterized"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Atlas is the product of one rebuild.
type Atlas struct {
	// Glyphs is the string after the unsupported-glyph policy was applied.
	Glyphs string

	// Extent is the grid the glyphs were laid out on.
	Extent GridExtent

	// Mesh is the geometry that was rasterized.
	Mesh *Mesh

	// Bitmap holds the rendered atlas. It is nil when Glyphs is empty.
	Bitmap *Bitmap
}

// Empty reports whether the atlas has nothing rendered.
func (a *Atlas) Empty() bool {
	return a == nil || a.Extent.Empty()
}

// Generator runs the rebuild cycle of an atlas:
//
//	Idle -> LayoutComputed -> MeshBuilt -> Rasterized -> Idle
//
// A rebuild whose Config equals that of the previous successful rebuild,
// with an unchanged font texture, returns the previous Atlas without
// touching the backend. Generator is not safe for concurrent use; callers
// must serialise rebuilds.
type Generator struct {
	opts       generatorOptions
	builder    *MeshBuilder
	rasterizer *Rasterizer

	stage Stage

	last        Config
	lastVersion uint64
	atlas       *Atlas
}

// NewGenerator creates a generator rendering through backend.
func NewGenerator(backend RasterizationBackend, opts ...GeneratorOption) *Generator {
	o := defaultGeneratorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Generator{
		opts:       o,
		builder:    NewMeshBuilder(),
		rasterizer: NewRasterizer(backend),
	}
}

// Stage returns the stage the generator is in. Outside Rebuild this is
// always StageIdle.
func (g *Generator) Stage() Stage {
	return g.stage
}

// Atlas returns the result of the last successful rebuild, or nil.
func (g *Generator) Atlas() *Atlas {
	return g.atlas
}

// Invalidate forgets the memoized atlas so the next Rebuild runs the full
// cycle.
func (g *Generator) Invalidate() {
	g.atlas = nil
	g.last = Config{}
}

// Rebuild produces the atlas for cfg.
//
// Errors leave no partial result behind: the generator returns to
// StageIdle and the memoized atlas is dropped.
func (g *Generator) Rebuild(cfg Config) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		g.fail()
		return nil, err
	}

	version := fontVersion(cfg.Font)
	if g.opts.memoize && g.atlas != nil && cfg == g.last && version == g.lastVersion {
		Logger().Debug("fontatlas: rebuild skipped, inputs unchanged")
		return g.atlas, nil
	}

	atlas, err := g.rebuild(cfg)
	if err != nil {
		g.fail()
		return nil, err
	}

	g.atlas = atlas
	g.last = cfg
	// RequestGlyphs may have grown the texture; remember the version the
	// atlas was built against.
	g.lastVersion = fontVersion(cfg.Font)
	g.setStage(StageIdle)
	return atlas, nil
}

func (g *Generator) rebuild(cfg Config) (*Atlas, error) {
	glyphs := Resolve(cfg.Glyphs, cfg.Font, cfg.Policy)
	if err := cfg.Font.RequestGlyphs(glyphs, cfg.FontSize); err != nil {
		return nil, fmt.Errorf("fontatlas: request glyphs: %w", err)
	}

	extent, err := ComputeExtent(utf8.RuneCountInString(glyphs), cfg.Columns, cfg.CellSize)
	if err != nil {
		return nil, err
	}
	g.setStage(StageLayoutComputed)

	if extent.Empty() {
		Logger().Debug("fontatlas: nothing to render")
		return &Atlas{Glyphs: glyphs, Mesh: g.builder.Build("", cfg.Font, cfg.FontSize, extent, 0)}, nil
	}

	mesh := g.builder.Build(glyphs, cfg.Font, cfg.FontSize, extent, cfg.VerticalOffset)
	g.setStage(StageMeshBuilt)

	bmp, err := g.rasterizer.Rasterize(mesh, cfg.Font.Texture(), extent, cfg.Background, cfg.Foreground)
	if err != nil {
		return nil, err
	}
	if g.opts.cloneBitmaps {
		bmp = bmp.Clone()
	}
	g.setStage(StageRasterized)

	return &Atlas{Glyphs: glyphs, Extent: extent, Mesh: mesh, Bitmap: bmp}, nil
}

func (g *Generator) setStage(s Stage) {
	if g.stage == s {
		return
	}
	Logger().Debug("fontatlas: stage", "from", g.stage.String(), "to", s.String())
	g.stage = s
}

func (g *Generator) fail() {
	g.Invalidate()
	g.setStage(StageIdle)
}

// Close releases the rasterizer's render target.
func (g *Generator) Close() error {
	g.Invalidate()
	return g.rasterizer.Close()
}

func fontVersion(font GlyphMetricsProvider) uint64 {
	if v, ok := font.(Versioned); ok {
		return v.Version()
	}
	return 0
}
