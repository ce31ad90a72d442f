package fontatlas

import "errors"

// Sentinel errors for the fontatlas package.
var (
	// ErrNilFont is returned when a rebuild is requested without a font.
	ErrNilFont = errors.New("fontatlas: font provider is nil")

	// ErrNilBackend is returned when a rasterizer has no backend to draw with.
	ErrNilBackend = errors.New("fontatlas: rasterization backend is nil")

	// ErrUnknownBackend is returned by NewBackend for unregistered names.
	ErrUnknownBackend = errors.New("fontatlas: unknown backend")

	// ErrClosed is returned when a closed Rasterizer or Generator is used.
	ErrClosed = errors.New("fontatlas: use of closed rasterizer")
)

// ConfigError reports an invalid atlas configuration. It is fatal for the
// rebuild that produced it: no bitmap is returned alongside it.
type ConfigError struct {
	// Field names the offending configuration value.
	Field string
	// Reason describes the constraint that was violated.
	Reason string
	// Err is the underlying cause, if any (e.g. a backend failure).
	Err error
}

func (e *ConfigError) Error() string {
	msg := "fontatlas: invalid config." + e.Field + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
