package fontatlas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Rasterizer renders atlas meshes through a RasterizationBackend and reads
// the result back into a Bitmap.
//
// A Rasterizer owns at most one backend target at a time and one bitmap.
// Both are replaced wholesale when the requested atlas size changes.
// Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	backend RasterizationBackend

	target     TargetHandle
	targetSize image.Point
	bitmap     *Bitmap

	closed bool
}

// NewRasterizer creates a rasterizer drawing with backend.
func NewRasterizer(backend RasterizationBackend) *Rasterizer {
	return &Rasterizer{backend: backend}
}

// Target returns the live target handle, or zero if none is held.
func (r *Rasterizer) Target() TargetHandle {
	return r.target
}

// Rasterize draws mesh into an off-screen target of extent.TotalPixels(),
// cleared to background, with texture alpha tinted by foreground, and
// returns the read-back pixels.
//
// The returned bitmap is owned by the rasterizer and is overwritten by the
// next call with the same extent size; use Bitmap.Clone to keep it.
// Whatever target was bound on the backend before the call is bound again
// when Rasterize returns, on success and on failure.
func (r *Rasterizer) Rasterize(mesh *Mesh, texture *image.Alpha, extent GridExtent, background, foreground color.Color) (*Bitmap, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if r.backend == nil {
		return nil, ErrNilBackend
	}
	if extent.Empty() || extent.CellWidth <= 0 || extent.CellHeight <= 0 {
		return nil, &ConfigError{Field: "Extent", Reason: "atlas has no cells to render"}
	}
	size := extent.TotalPixels()

	if err := r.ensureTarget(size); err != nil {
		return nil, err
	}

	previous := r.backend.ActiveTarget()
	if err := r.backend.Bind(r.target); err != nil {
		return nil, fmt.Errorf("fontatlas: bind target: %w", err)
	}
	defer func() {
		if err := r.backend.Bind(previous); err != nil {
			Logger().Warn("fontatlas: restore previous target", "target", previous, "err", err)
		}
	}()

	if err := r.backend.Clear(background); err != nil {
		return nil, fmt.Errorf("fontatlas: clear target: %w", err)
	}

	projection := mgl32.Ortho2D(0, float32(size.X), 0, float32(size.Y))
	if err := r.backend.Submit(mesh, texture, foreground, projection); err != nil {
		return nil, fmt.Errorf("fontatlas: submit mesh: %w", err)
	}

	pixels, err := r.backend.Readback(r.target)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: readback: %w", err)
	}
	if pixels.Rect.Size() != size {
		return nil, fmt.Errorf("fontatlas: readback returned %v, want %v", pixels.Rect.Size(), size)
	}

	if r.bitmap == nil || r.bitmap.Size() != size {
		r.bitmap = NewBitmap(size.X, size.Y)
	}
	r.bitmap.copyFrom(pixels)
	return r.bitmap, nil
}

// ensureTarget makes r.target a live target of exactly size, releasing a
// held target of any other size first.
func (r *Rasterizer) ensureTarget(size image.Point) error {
	if r.target != 0 && r.targetSize == size {
		return nil
	}
	if r.target != 0 {
		if err := r.releaseTarget(); err != nil {
			return err
		}
	}

	h, err := r.backend.CreateTarget(size.X, size.Y)
	if err != nil {
		return &ConfigError{
			Field:  "Target",
			Reason: fmt.Sprintf("cannot create %dx%d render target", size.X, size.Y),
			Err:    err,
		}
	}
	if h == 0 {
		return &ConfigError{Field: "Target", Reason: "backend returned no target"}
	}

	r.target = h
	r.targetSize = size
	Logger().Debug("fontatlas: render target created", "target", h, "width", size.X, "height", size.Y)
	return nil
}

func (r *Rasterizer) releaseTarget() error {
	h := r.target
	r.target = 0
	r.targetSize = image.Point{}
	if err := r.backend.ReleaseTarget(h); err != nil {
		return fmt.Errorf("fontatlas: release target %d: %w", h, err)
	}
	Logger().Debug("fontatlas: render target released", "target", h)
	return nil
}

// Close releases the target and the bitmap. Close is idempotent.
func (r *Rasterizer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.bitmap = nil

	if r.target == 0 || r.backend == nil {
		return nil
	}
	return r.releaseTarget()
}
