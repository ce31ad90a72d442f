package fontatlas

import "image"

// GridExtent is the shape of an atlas: a Columns x Rows grid of cells of
// CellWidth x CellHeight pixels. The zero value is the empty extent.
type GridExtent struct {
	Columns    int
	Rows       int
	CellWidth  int
	CellHeight int
}

// ComputeExtent lays glyphCount glyphs onto a grid at most maxColumns wide.
//
//	Columns = min(glyphCount, maxColumns)
//	Rows    = ceil(glyphCount / Columns)
//
// A glyphCount of zero yields the empty extent: there is nothing to render.
// Non-positive cell dimensions or column counts are configuration errors.
func ComputeExtent(glyphCount, maxColumns int, cell image.Point) (GridExtent, error) {
	if cell.X <= 0 || cell.Y <= 0 {
		return GridExtent{}, &ConfigError{Field: "CellSize", Reason: "width and height must be positive"}
	}
	if maxColumns <= 0 {
		return GridExtent{}, &ConfigError{Field: "Columns", Reason: "must be positive"}
	}
	if glyphCount <= 0 {
		return GridExtent{}, nil
	}

	cols := min(glyphCount, maxColumns)
	rows := (glyphCount + cols - 1) / cols
	return GridExtent{
		Columns:    cols,
		Rows:       rows,
		CellWidth:  cell.X,
		CellHeight: cell.Y,
	}, nil
}

// Empty reports whether the extent holds no cells.
func (e GridExtent) Empty() bool {
	return e.Columns <= 0 || e.Rows <= 0
}

// Capacity returns the number of cells in the grid.
func (e GridExtent) Capacity() int {
	if e.Empty() {
		return 0
	}
	return e.Columns * e.Rows
}

// CellSize returns the cell dimensions.
func (e GridExtent) CellSize() image.Point {
	return image.Pt(e.CellWidth, e.CellHeight)
}

// TotalPixels returns the pixel size of the whole atlas.
func (e GridExtent) TotalPixels() image.Point {
	if e.Empty() {
		return image.Point{}
	}
	return image.Pt(e.Columns*e.CellWidth, e.Rows*e.CellHeight)
}

// CellOf returns the grid cell of the glyph at index.
func (e GridExtent) CellOf(index int) (col, row int) {
	if e.Columns <= 0 {
		return 0, 0
	}
	return index % e.Columns, index / e.Columns
}

// OriginY returns the bottom edge of row in atlas pixel space, where y grows
// upwards from the bottom of the atlas. Row 0 is the top band of the atlas.
func (e GridExtent) OriginY(row int) int {
	return e.TotalPixels().Y - (row+1)*e.CellHeight
}

// CellRect returns the cell of the glyph at index in image coordinates
// (origin top-left, y down), the layout of a read-back bitmap.
func (e GridExtent) CellRect(index int) image.Rectangle {
	col, row := e.CellOf(index)
	x := col * e.CellWidth
	y := row * e.CellHeight
	return image.Rect(x, y, x+e.CellWidth, y+e.CellHeight)
}
