package text

import (
	"image"
	"testing"
)

func TestShelfPacker(t *testing.T) {
	p := newShelfPacker(32, 32, 1)

	tests := []struct {
		name   string
		w, h   int
		want   image.Rectangle
		wantOK bool
	}{
		{"first", 10, 8, image.Rect(0, 0, 10, 8), true},
		{"same shelf", 10, 6, image.Rect(11, 0, 21, 6), true},
		{"new shelf", 10, 10, image.Rect(0, 9, 10, 19), true},
		{"grows last shelf", 10, 12, image.Rect(11, 9, 21, 21), true},
		{"empty", 0, 5, image.Rectangle{}, true},
		{"too wide", 40, 1, image.Rectangle{}, false},
	}
	for _, tt := range tests {
		got, ok := p.allocate(tt.w, tt.h)
		if ok != tt.wantOK {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%s: rect = %v, want %v", tt.name, got, tt.want)
		}
	}

	if u := p.utilization(); u <= 0 || u > 1 {
		t.Errorf("utilization() = %v, want in (0,1]", u)
	}

	p.reset(8, 8)
	if r, ok := p.allocate(4, 4); !ok || r != image.Rect(0, 0, 4, 4) {
		t.Errorf("after reset allocate = %v, %v", r, ok)
	}
	if _, ok := p.allocate(9, 1); ok {
		t.Error("reset kept the old width")
	}
}

func TestShelfPackerFull(t *testing.T) {
	p := newShelfPacker(16, 16, 0)
	for i := range 4 {
		if _, ok := p.allocate(16, 4); !ok {
			t.Fatalf("row %d did not fit", i)
		}
	}
	if _, ok := p.allocate(1, 1); ok {
		t.Error("allocation in a full packer succeeded")
	}
}
