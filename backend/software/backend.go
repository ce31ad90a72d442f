// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/vector"
)

// Name is the registry name of the software backend.
const Name = "software"

// DefaultMaxTargetSize is the largest target edge accepted by default,
// matching the texture limit of common GPUs.
const DefaultMaxTargetSize = 16384

// Errors returned by the software backend.
var (
	ErrInvalidTarget  = errors.New("software: invalid target")
	ErrNoTarget       = errors.New("software: no target bound")
	ErrInvalidSize    = errors.New("software: invalid target size")
	ErrUnsupportedFmt = errors.New("software: unsupported target format")
	ErrMissingTexture = errors.New("software: mesh submitted without a texture")
)

func init() {
	fontatlas.RegisterBackend(Name, func() (fontatlas.RasterizationBackend, error) {
		return New(), nil
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithMaxTargetSize limits the width and height of created targets.
func WithMaxTargetSize(n int) Option {
	return func(b *Backend) {
		if n > 0 {
			b.maxSize = n
		}
	}
}

// WithFormat sets the pixel layout of new targets. RGBA8Unorm (the
// default) and BGRA8Unorm are supported; Readback always returns RGBA.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(b *Backend) {
		b.format = format
	}
}

// Backend is a CPU implementation of fontatlas.RasterizationBackend.
//
// Backend is not safe for concurrent use.
type Backend struct {
	maxSize int
	format  gputypes.TextureFormat

	targets map[fontatlas.TargetHandle]*target
	next    fontatlas.TargetHandle
	bound   fontatlas.TargetHandle

	raster vector.Rasterizer
	mask   *image.Alpha
}

var _ fontatlas.RasterizationBackend = (*Backend)(nil)

// New creates a software backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		maxSize: DefaultMaxTargetSize,
		format:  gputypes.TextureFormatRGBA8Unorm,
		targets: make(map[fontatlas.TargetHandle]*target),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return Name
}

// CreateTarget allocates a cleared width x height target.
func (b *Backend) CreateTarget(width, height int) (fontatlas.TargetHandle, error) {
	if width <= 0 || height <= 0 || width > b.maxSize || height > b.maxSize {
		return 0, fmt.Errorf("%w: %dx%d (max %d)", ErrInvalidSize, width, height, b.maxSize)
	}
	switch b.format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFmt, b.format)
	}

	b.next++
	h := b.next
	b.targets[h] = newTarget(width, height, b.format)
	fontatlas.Logger().Debug("software: target created", "handle", uint64(h), "width", width, "height", height)
	return h, nil
}

// ReleaseTarget frees a target. Releasing the bound target unbinds it.
func (b *Backend) ReleaseTarget(h fontatlas.TargetHandle) error {
	if _, ok := b.targets[h]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, h)
	}
	delete(b.targets, h)
	if b.bound == h {
		b.bound = 0
	}
	fontatlas.Logger().Debug("software: target released", "handle", uint64(h))
	return nil
}

// TargetSize reports the dimensions of a live target.
func (b *Backend) TargetSize(h fontatlas.TargetHandle) (image.Point, bool) {
	t, ok := b.targets[h]
	if !ok {
		return image.Point{}, false
	}
	return t.Size(), true
}

// TargetFormat reports the pixel format of a live target.
func (b *Backend) TargetFormat(h fontatlas.TargetHandle) (gputypes.TextureFormat, bool) {
	t, ok := b.targets[h]
	if !ok {
		return gputypes.TextureFormatUndefined, false
	}
	return t.format, true
}

// Targets returns the number of live targets.
func (b *Backend) Targets() int {
	return len(b.targets)
}

// Bind selects the target for Clear and Submit. Zero unbinds.
func (b *Backend) Bind(h fontatlas.TargetHandle) error {
	if h != 0 {
		if _, ok := b.targets[h]; !ok {
			return fmt.Errorf("%w: %d", ErrInvalidTarget, h)
		}
	}
	b.bound = h
	return nil
}

// ActiveTarget returns the bound target, or zero.
func (b *Backend) ActiveTarget() fontatlas.TargetHandle {
	return b.bound
}

// Clear fills the bound target with c.
func (b *Backend) Clear(c color.Color) error {
	t, err := b.active()
	if err != nil {
		return err
	}
	t.Clear(c)
	return nil
}

// Readback returns a copy of the target's pixels as RGBA.
func (b *Backend) Readback(h fontatlas.TargetHandle) (*image.RGBA, error) {
	t, ok := b.targets[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTarget, h)
	}
	return t.Image(), nil
}

func (b *Backend) active() (*target, error) {
	if b.bound == 0 {
		return nil, ErrNoTarget
	}
	t, ok := b.targets[b.bound]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTarget, b.bound)
	}
	return t, nil
}
