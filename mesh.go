package fontatlas

import (
	"image"
	"math"
)

// Vertex is a mesh vertex: a position in atlas pixel space (y up) and a
// coordinate in font-texture space.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Glyph is one character of a build together with the cell it was
// assigned and the metrics it was drawn with.
type Glyph struct {
	Rune    rune
	Index   int // rune index in the laid out string
	Col     int
	Row     int
	Metrics GlyphMetrics
}

// Quad is the geometry of one glyph: vertices in bottom-left, bottom-right,
// top-right, top-left order.
type Quad struct {
	Glyph    Glyph
	Vertices [4]Vertex
}

// quadIndices are the two counter-clockwise triangles of a quad.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// Mesh is the drawable geometry of an atlas: one quad per rendered glyph,
// in string order.
type Mesh struct {
	quads []Quad
}

// Len returns the number of quads.
func (m *Mesh) Len() int {
	if m == nil {
		return 0
	}
	return len(m.quads)
}

// Quads returns the quads of the mesh. The slice must not be modified.
func (m *Mesh) Quads() []Quad {
	if m == nil {
		return nil
	}
	return m.quads
}

// Vertices returns the flattened vertex list, four vertices per quad.
func (m *Mesh) Vertices() []Vertex {
	vs := make([]Vertex, 0, 4*m.Len())
	for i := range m.Quads() {
		vs = append(vs, m.quads[i].Vertices[:]...)
	}
	return vs
}

// Indices returns the triangle list matching Vertices, six indices per quad.
func (m *Mesh) Indices() []uint32 {
	is := make([]uint32, 0, 6*m.Len())
	for q := range m.Len() {
		base := uint32(4 * q) //nolint:gosec // quad count is bounded by the atlas grid
		for _, i := range quadIndices {
			is = append(is, base+i)
		}
	}
	return is
}

// Bounds returns the smallest integer rectangle, in atlas pixel space,
// containing every quad. Empty meshes return the zero rectangle.
func (m *Mesh) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, q := range m.Quads() {
		bl, tr := q.Vertices[0], q.Vertices[2]
		qr := image.Rect(
			int(math.Floor(float64(bl.X))), int(math.Floor(float64(bl.Y))),
			int(math.Ceil(float64(tr.X))), int(math.Ceil(float64(tr.Y))),
		)
		r = r.Union(qr)
	}
	return r
}

// MeshBuilder turns a laid out string into a Mesh. A builder holds the mesh
// of its most recent Build; every Build replaces it wholesale.
type MeshBuilder struct {
	mesh *Mesh
}

// NewMeshBuilder returns a builder holding an empty mesh.
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{mesh: &Mesh{}}
}

// Mesh returns the mesh produced by the last Build.
func (b *MeshBuilder) Mesh() *Mesh {
	return b.mesh
}

// Build creates one quad per character of text. The character at rune
// index i is placed in cell layout.CellOf(i), anchored at the cell's bottom
// left corner and shifted by the glyph's own offset plus verticalOffset.
// Quads keep the glyph's pixel size; they are never stretched to the cell.
//
// Characters the font has no metrics for produce no quad but still consume
// their cell, so later glyphs stay aligned with their string index.
// font.RequestGlyphs(text, fontSize) must have been called beforehand.
func (b *MeshBuilder) Build(text string, font GlyphMetricsProvider, fontSize int, layout GridExtent, verticalOffset int) *Mesh {
	mesh := &Mesh{}
	if font == nil || layout.Empty() {
		b.mesh = mesh
		return mesh
	}

	index := 0
	for _, r := range text {
		if index >= layout.Capacity() {
			break
		}
		m, ok := font.MetricsFor(r, fontSize)
		if !ok {
			index++
			continue
		}

		col, row := layout.CellOf(index)
		x0 := float32(col*layout.CellWidth + m.Offset.X)
		y0 := float32(layout.OriginY(row) + m.Offset.Y + verticalOffset)
		x1 := x0 + float32(m.Size.X)
		y1 := y0 + float32(m.Size.Y)
		uv := m.UV

		mesh.quads = append(mesh.quads, Quad{
			Glyph: Glyph{Rune: r, Index: index, Col: col, Row: row, Metrics: m},
			Vertices: [4]Vertex{
				{X: x0, Y: y0, U: uv.U0, V: uv.V0},
				{X: x1, Y: y0, U: uv.U1, V: uv.V0},
				{X: x1, Y: y1, U: uv.U1, V: uv.V1},
				{X: x0, Y: y1, U: uv.U0, V: uv.V1},
			},
		})
		index++
	}

	b.mesh = mesh
	return mesh
}
