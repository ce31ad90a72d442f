package fontatlas

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var testBackground = color.RGBA{R: 10, G: 20, B: 30, A: 255}

func squareExtent(t *testing.T, count, cols, size int) GridExtent {
	t.Helper()
	e, err := ComputeExtent(count, cols, image.Pt(size, size))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func assertFilled(t *testing.T, bmp *Bitmap, want color.RGBA) {
	t.Helper()
	b := bmp.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := bmp.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRasterizerResizeRecreatesTarget(t *testing.T) {
	backend := newFakeBackend()
	r := NewRasterizer(backend)
	defer func() { _ = r.Close() }()

	small := squareExtent(t, 1, 1, 64) // 64x64
	bmp, err := r.Rasterize(&Mesh{}, nil, small, testBackground, color.White)
	if err != nil {
		t.Fatalf("Rasterize 64x64: %v", err)
	}
	if bmp.Size() != image.Pt(64, 64) {
		t.Fatalf("bitmap size = %v, want 64x64", bmp.Size())
	}
	old := r.Target()

	wide := squareExtent(t, 2, 2, 64) // 128x64
	bmp, err = r.Rasterize(&Mesh{}, nil, wide, testBackground, color.White)
	if err != nil {
		t.Fatalf("Rasterize 128x64: %v", err)
	}

	if len(backend.released) != 1 || backend.released[0] != old {
		t.Errorf("released = %v, want [%d]", backend.released, old)
	}
	if _, ok := backend.TargetSize(old); ok {
		t.Error("old target is still alive")
	}
	if size, ok := backend.TargetSize(r.Target()); !ok || size != image.Pt(128, 64) {
		t.Errorf("new target size = %v, %v; want 128x64", size, ok)
	}
	if bmp.Size() != image.Pt(128, 64) {
		t.Errorf("bitmap size = %v, want 128x64", bmp.Size())
	}
	assertFilled(t, bmp, testBackground)
}

func TestRasterizerReusesTarget(t *testing.T) {
	backend := newFakeBackend()
	r := NewRasterizer(backend)

	e := squareExtent(t, 4, 2, 8)
	first, err := r.Rasterize(&Mesh{}, nil, e, testBackground, color.White)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Rasterize(&Mesh{}, nil, e, color.Black, color.White)
	if err != nil {
		t.Fatal(err)
	}
	if backend.created != 1 {
		t.Errorf("created %d targets, want 1", backend.created)
	}
	if first != second {
		t.Error("same-size rasterization reallocated the bitmap")
	}
	assertFilled(t, second, color.RGBA{A: 255})

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(backend.targets) != 0 {
		t.Errorf("Close left %d targets alive", len(backend.targets))
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if _, err := r.Rasterize(&Mesh{}, nil, e, color.Black, color.White); !errors.Is(err, ErrClosed) {
		t.Errorf("Rasterize after Close error = %v, want %v", err, ErrClosed)
	}
}

func TestRasterizerDrawsMesh(t *testing.T) {
	backend := newFakeBackend()
	r := NewRasterizer(backend)
	font := newFakeFont("A")

	e := squareExtent(t, 1, 1, 8)
	mesh := NewMeshBuilder().Build("A", font, 8, e, 1)
	bmp, err := r.Rasterize(mesh, font.Texture(), e, color.Black, color.White)
	if err != nil {
		t.Fatal(err)
	}
	if backend.submits != 1 {
		t.Errorf("submits = %d, want 1", backend.submits)
	}

	// The 4x6 glyph sits one pixel right and one pixel up from the cell's
	// bottom-left corner.
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := range 8 {
		for x := range 8 {
			inside := x >= 1 && x < 5 && y >= 1 && y < 7
			want := color.RGBA{A: 255}
			if inside {
				want = white
			}
			if got := bmp.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRasterizerRestoresBinding(t *testing.T) {
	backend := newFakeBackend()
	other, _ := backend.CreateTarget(4, 4)
	if err := backend.Bind(other); err != nil {
		t.Fatal(err)
	}

	r := NewRasterizer(backend)
	e := squareExtent(t, 1, 1, 8)

	if _, err := r.Rasterize(&Mesh{}, nil, e, color.Black, color.White); err != nil {
		t.Fatal(err)
	}
	if backend.ActiveTarget() != other {
		t.Errorf("after success ActiveTarget() = %d, want %d", backend.ActiveTarget(), other)
	}

	backend.submitErr = errors.New("device lost")
	_, err := r.Rasterize(&Mesh{}, nil, e, color.Black, color.White)
	if !errors.Is(err, backend.submitErr) {
		t.Fatalf("error = %v, want wrapped %v", err, backend.submitErr)
	}
	if backend.ActiveTarget() != other {
		t.Errorf("after failure ActiveTarget() = %d, want %d", backend.ActiveTarget(), other)
	}
}

func TestRasterizerErrors(t *testing.T) {
	e := squareExtent(t, 1, 1, 8)

	t.Run("nil backend", func(t *testing.T) {
		r := NewRasterizer(nil)
		if _, err := r.Rasterize(&Mesh{}, nil, e, color.Black, color.White); !errors.Is(err, ErrNilBackend) {
			t.Errorf("error = %v, want %v", err, ErrNilBackend)
		}
		if err := r.Close(); err != nil {
			t.Errorf("Close = %v", err)
		}
	})

	t.Run("empty extent", func(t *testing.T) {
		r := NewRasterizer(newFakeBackend())
		_, err := r.Rasterize(&Mesh{}, nil, GridExtent{}, color.Black, color.White)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "Extent" {
			t.Errorf("error = %v, want *ConfigError on Extent", err)
		}
	})

	t.Run("create target fails", func(t *testing.T) {
		backend := newFakeBackend()
		backend.createErr = errors.New("out of memory")
		r := NewRasterizer(backend)

		_, err := r.Rasterize(&Mesh{}, nil, e, color.Black, color.White)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "Target" {
			t.Fatalf("error = %v, want *ConfigError on Target", err)
		}
		if !errors.Is(err, backend.createErr) {
			t.Errorf("error %v does not wrap the backend error", err)
		}
		if r.Target() != 0 {
			t.Errorf("Target() = %d after failed create", r.Target())
		}
	})
}
