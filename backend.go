package fontatlas

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// TargetHandle identifies an off-screen render target owned by a backend.
// The zero handle means "no target".
type TargetHandle uint64

// RasterizationBackend draws atlas meshes into off-screen targets.
//
// Backends are stateful: Clear and Submit operate on the target selected
// with Bind. Backends are not safe for concurrent use and must be driven
// from the goroutine that owns the rendering context.
type RasterizationBackend interface {
	// CreateTarget allocates a width x height RGBA target.
	CreateTarget(width, height int) (TargetHandle, error)

	// ReleaseTarget frees a target. Releasing the bound target unbinds it.
	ReleaseTarget(h TargetHandle) error

	// TargetSize reports the dimensions of a live target.
	TargetSize(h TargetHandle) (image.Point, bool)

	// Bind selects the target for subsequent Clear and Submit calls.
	// Binding the zero handle unbinds.
	Bind(h TargetHandle) error

	// ActiveTarget returns the currently bound target, or zero.
	ActiveTarget() TargetHandle

	// Clear fills the bound target with c.
	Clear(c color.Color) error

	// Submit draws every quad of mesh, sampling texture alpha and tinting
	// it with tint. projection maps mesh positions to clip space.
	Submit(mesh *Mesh, texture *image.Alpha, tint color.Color, projection mgl32.Mat4) error

	// Readback copies the target's pixels into CPU memory. Row 0 of the
	// returned image is the top row of the target.
	Readback(h TargetHandle) (*image.RGBA, error)
}

// BackendFactory creates a fresh backend instance.
type BackendFactory func() (RasterizationBackend, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]BackendFactory{}
)

// RegisterBackend makes a backend available to NewBackend under name.
// Registering a name twice replaces the earlier factory.
//
// Typical usage via blank import in backend packages:
//
//	func init() {
//	    fontatlas.RegisterBackend("software", func() (fontatlas.RasterizationBackend, error) {
//	        return software.New(), nil
//	    })
//	}
func RegisterBackend(name string, factory BackendFactory) {
	if factory == nil {
		panic("fontatlas: RegisterBackend factory is nil")
	}
	backendsMu.Lock()
	backends[name] = factory
	backendsMu.Unlock()
	Logger().Info("fontatlas: backend registered", "name", name)
}

// NewBackend instantiates a registered backend.
func NewBackend(name string) (RasterizationBackend, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return factory()
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
