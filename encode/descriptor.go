package encode

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/fontatlas"
)

// Descriptor is the JSON sidecar of an atlas image. Rectangles are in
// image pixels with the origin at the top-left.
type Descriptor struct {
	Font       string      `json:"font"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	CellWidth  int         `json:"cellWidth"`
	CellHeight int         `json:"cellHeight"`
	Columns    int         `json:"columns"`
	Rows       int         `json:"rows"`
	Glyphs     []GlyphCell `json:"glyphs"`
}

// GlyphCell locates one character of the atlas.
type GlyphCell struct {
	Char     string `json:"char"`
	Code     int    `json:"code"`
	Index    int    `json:"index"`
	Column   int    `json:"column"`
	Row      int    `json:"row"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	W        int    `json:"w"`
	H        int    `json:"h"`
	Rendered bool   `json:"rendered"`
}

// NewDescriptor describes atlas. Every character of the laid out string
// gets a cell; Rendered is false for characters the font drew nothing for.
func NewDescriptor(atlas *fontatlas.Atlas, fontName string) Descriptor {
	d := Descriptor{Font: fontName, Glyphs: []GlyphCell{}}
	if atlas.Empty() {
		return d
	}

	ext := atlas.Extent
	size := ext.TotalPixels()
	d.Width, d.Height = size.X, size.Y
	d.CellWidth, d.CellHeight = ext.CellWidth, ext.CellHeight
	d.Columns, d.Rows = ext.Columns, ext.Rows

	drawn := make(map[int]bool, atlas.Mesh.Len())
	for _, q := range atlas.Mesh.Quads() {
		drawn[q.Glyph.Index] = q.Glyph.Metrics.Size.X > 0 && q.Glyph.Metrics.Size.Y > 0
	}

	i := 0
	for _, r := range atlas.Glyphs {
		if i >= ext.Capacity() {
			break
		}
		col, row := ext.CellOf(i)
		rect := ext.CellRect(i)
		d.Glyphs = append(d.Glyphs, GlyphCell{
			Char:     string(r),
			Code:     int(r),
			Index:    i,
			Column:   col,
			Row:      row,
			X:        rect.Min.X,
			Y:        rect.Min.Y,
			W:        rect.Dx(),
			H:        rect.Dy(),
			Rendered: drawn[i],
		})
		i++
	}
	return d
}

// WriteDescriptor writes the indented JSON descriptor of atlas to w.
func WriteDescriptor(w io.Writer, atlas *fontatlas.Atlas, fontName string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDescriptor(atlas, fontName))
}

// WriteDescriptorFile writes the descriptor of atlas to path.
// Failures are reported as *Error.
func WriteDescriptorFile(path string, atlas *fontatlas.Atlas, fontName string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	err = WriteDescriptor(f, atlas, fontName)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return &Error{Path: path, Err: err}
	}
	return nil
}
