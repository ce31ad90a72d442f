package text

import "image"

// shelfPacker implements shelf-based rectangle packing.
//
// Rectangles are organized in horizontal shelves. Each shelf is as tall as
// the tallest item placed on it. Items go left-to-right on the first shelf
// with room; when none fits, a new shelf is started below the last one.
// Glyphs of one font at one size are close to uniform, which keeps the
// waste low.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

// shelf represents a horizontal strip of the texture.
type shelf struct {
	y      int // top of the shelf
	height int // tallest item so far
	x      int // next free x
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a w x h rectangle and returns it in top-down
// texture coordinates. Empty sizes always succeed with an empty rectangle.
func (p *shelfPacker) allocate(w, h int) (image.Rectangle, bool) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, true
	}

	paddedW := w + p.padding
	paddedH := h + p.padding

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+paddedW > p.width {
			continue
		}
		if h > s.height {
			// Only the last shelf can grow, and only into free space below.
			if i != len(p.shelves)-1 || s.y+paddedH > p.height {
				continue
			}
			s.height = h
		}
		r := image.Rect(s.x, s.y, s.x+w, s.y+h)
		s.x += paddedW
		p.usedArea += w * h
		return r, true
	}

	newY := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		newY = last.y + last.height + p.padding
	}
	if paddedW > p.width || newY+paddedH > p.height {
		return image.Rectangle{}, false
	}

	p.shelves = append(p.shelves, shelf{y: newY, height: h, x: paddedW})
	p.usedArea += w * h
	return image.Rect(0, newY, w, newY+h), true
}

// reset clears all allocations and resizes the packer to width x height,
// keeping the shelf capacity.
func (p *shelfPacker) reset(width, height int) {
	p.width = width
	p.height = height
	p.shelves = p.shelves[:0]
	p.usedArea = 0
}

// utilization returns the fraction of the texture covered by glyphs.
func (p *shelfPacker) utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}
