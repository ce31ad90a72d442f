// Package encode writes atlas bitmaps to image files and describes their
// layout in a JSON sidecar.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encoding errors.
var (
	// ErrUnsupportedFormat is returned for file extensions without an encoder.
	ErrUnsupportedFormat = errors.New("encode: unsupported format")

	// ErrNilImage is returned when there is nothing to encode.
	ErrNilImage = errors.New("encode: nil image")

	// ErrEmptyOutput is returned when an encoder produced no bytes.
	ErrEmptyOutput = errors.New("encode: no bytes written")

	// ErrNotOpaque is returned by formats without an alpha channel when the
	// image has transparent pixels.
	ErrNotOpaque = errors.New("encode: format cannot store transparency")
)

// Error reports a failed write of Path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("encode: write %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Encoder serializes an image in one file format.
type Encoder interface {
	// Encode writes img to w.
	Encode(w io.Writer, img image.Image) error

	// Extensions returns the lower-case file extensions of the format,
	// including the leading dot.
	Extensions() []string
}

type pngEncoder struct{ enc png.Encoder }

func (e *pngEncoder) Encode(w io.Writer, img image.Image) error { return e.enc.Encode(w, img) }

func (e *pngEncoder) Extensions() []string { return []string{".png"} }

// bmpEncoder writes 24-bit BMP files, which have no alpha channel.
type bmpEncoder struct{}

func (bmpEncoder) Encode(w io.Writer, img image.Image) error {
	if !opaque(img) {
		return ErrNotOpaque
	}
	return bmp.Encode(w, img)
}

func (bmpEncoder) Extensions() []string { return []string{".bmp"} }

type tiffEncoder struct{ opts tiff.Options }

func (e *tiffEncoder) Encode(w io.Writer, img image.Image) error { return tiff.Encode(w, img, &e.opts) }

func (e *tiffEncoder) Extensions() []string { return []string{".tif", ".tiff"} }

var encoders = []Encoder{
	&pngEncoder{enc: png.Encoder{CompressionLevel: png.BestCompression}},
	bmpEncoder{},
	&tiffEncoder{opts: tiff.Options{Compression: tiff.Deflate, Predictor: true}},
}

// ForPath returns the encoder matching the extension of path.
func ForPath(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, enc := range encoders {
		if slices.Contains(enc.Extensions(), ext) {
			return enc, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Extensions returns every supported file extension.
func Extensions() []string {
	var exts []string
	for _, enc := range encoders {
		exts = append(exts, enc.Extensions()...)
	}
	return exts
}

// opaque reports whether every pixel of img is fully opaque.
func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// countingWriter counts the bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Encode writes img to w with enc. An encoder that writes nothing fails
// with ErrEmptyOutput.
func Encode(w io.Writer, enc Encoder, img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	cw := &countingWriter{w: w}
	if err := enc.Encode(cw, img); err != nil {
		return err
	}
	if cw.n == 0 {
		return ErrEmptyOutput
	}
	return nil
}

// WriteFile encodes img into path, choosing the format from the file
// extension. Failures are reported as *Error and leave no partial file.
func WriteFile(path string, img image.Image) error {
	enc, err := ForPath(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	if img == nil {
		return &Error{Path: path, Err: ErrNilImage}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return &Error{Path: path, Err: err}
	}

	err = Encode(f, enc, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return &Error{Path: path, Err: err}
	}
	return nil
}
