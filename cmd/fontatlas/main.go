// Command fontatlas bakes a bitmap font atlas from a TrueType or OpenType
// font.
//
//	fontatlas -font PxPlus_IBM_VGA8.ttf -size 16 -cell-width 8 -cell-height 16 -out vga.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/gogpu/fontatlas"
	_ "github.com/gogpu/fontatlas/backend/software"
	"github.com/gogpu/fontatlas/charset"
	"github.com/gogpu/fontatlas/encode"
	"github.com/gogpu/fontatlas/text"
	"golang.org/x/image/font/gofont/gomono"
)

type options struct {
	fontPath    string
	fontName    string
	parser      string
	backend     string
	size        int
	glyphs      string
	custom      string
	cellWidth   int
	cellHeight  int
	columns     int
	vOffset     string
	policy      string
	bg, fg      string
	threshold   int
	out         string
	preview     string
	scale       int
	grid        bool
	gridColor   string
	descriptor  string
	verbose     bool
	listBackend bool
}

func main() {
	var o options
	flag.StringVar(&o.fontPath, "font", "", "font file (TTF/OTF); default Go Mono")
	flag.StringVar(&o.fontName, "font-name", "", "system font to look up by name, e.g. DejaVuSansMono")
	flag.StringVar(&o.parser, "parser", "ximage", "font parser: "+strings.Join(text.Parsers(), ", "))
	flag.StringVar(&o.backend, "backend", "software", "rasterization backend")
	flag.IntVar(&o.size, "size", fontatlas.DefaultFontSize, "font size in pixels per em")
	flag.StringVar(&o.glyphs, "glyphs", "cp437", "glyph set: "+strings.Join(charset.Names, ", ")+", custom")
	flag.StringVar(&o.custom, "custom", "", "characters for -glyphs custom")
	flag.IntVar(&o.cellWidth, "cell-width", fontatlas.DefaultCellSize, "cell width in pixels")
	flag.IntVar(&o.cellHeight, "cell-height", fontatlas.DefaultCellSize, "cell height in pixels")
	flag.IntVar(&o.columns, "columns", fontatlas.DefaultColumns, "maximum cells per row")
	flag.StringVar(&o.vOffset, "voffset", strconv.Itoa(fontatlas.DefaultVerticalOffset), "baseline height above the cell bottom in pixels, or \"auto\" for the font descent")
	flag.StringVar(&o.policy, "policy", fontatlas.PolicyEmpty.String(), "unsupported glyphs: fallback, empty or remove")
	flag.StringVar(&o.bg, "bg", "#000000", "background color")
	flag.StringVar(&o.fg, "fg", "#ffffff", "glyph color")
	flag.IntVar(&o.threshold, "threshold", 0, "binarize glyph coverage at this alpha (1-255), 0 keeps antialiasing")
	flag.StringVar(&o.out, "out", "atlas.png", "output image (.png, .bmp, .tif)")
	flag.StringVar(&o.preview, "preview", "", "optional magnified preview image")
	flag.IntVar(&o.scale, "preview-scale", 4, "preview magnification")
	flag.BoolVar(&o.grid, "grid", false, "draw the cell grid on the preview")
	flag.StringVar(&o.gridColor, "grid-color", fontatlas.FormatHex(fontatlas.DefaultGridColor), "preview grid color")
	flag.StringVar(&o.descriptor, "descriptor", "", "optional JSON descriptor of the glyph cells")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.BoolVar(&o.listBackend, "backends", false, "list rasterization backends and exit")
	flag.Parse()

	if o.verbose {
		fontatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if o.listBackend {
		for _, name := range fontatlas.Backends() {
			fmt.Println(name)
		}
		return
	}

	if err := run(o); err != nil {
		log.Fatalf("fontatlas: %v", err)
	}
}

func run(o options) error {
	source, err := loadFont(o)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	if o.threshold < 0 || o.threshold > 255 {
		return fmt.Errorf("-threshold %d out of range 0-255", o.threshold)
	}
	font := text.NewProvider(source, text.WithAlphaThreshold(uint8(o.threshold)))
	defer func() { _ = font.Close() }()

	cfg, err := buildConfig(o, font)
	if err != nil {
		return err
	}

	backend, err := fontatlas.NewBackend(o.backend)
	if err != nil {
		return err
	}
	gen := fontatlas.NewGenerator(backend)
	defer func() { _ = gen.Close() }()

	atlas, err := gen.Rebuild(cfg)
	if err != nil {
		return err
	}
	if atlas.Empty() {
		log.Printf("Nothing to render: %s covers none of the requested glyphs", source.Name())
		return nil
	}

	// Each output is written independently; a failed one does not undo the
	// others.
	var errs []error
	if err := encode.WriteFile(o.out, atlas.Bitmap); err != nil {
		errs = append(errs, err)
	} else {
		size := atlas.Extent.TotalPixels()
		log.Printf("Atlas saved to %s (%dx%d, %d glyphs, %s)", o.out, size.X, size.Y, atlas.Mesh.Len(), source.Name())
	}

	if o.preview != "" {
		gridColor, err := fontatlas.ParseHex(o.gridColor)
		if err != nil {
			return err
		}
		img := fontatlas.Preview(atlas.Bitmap, atlas.Extent, fontatlas.PreviewOptions{
			Scale:     o.scale,
			Grid:      o.grid,
			GridColor: gridColor,
		})
		if err := encode.WriteFile(o.preview, img); err != nil {
			errs = append(errs, err)
		}
	}

	if o.descriptor != "" {
		if err := encode.WriteDescriptorFile(o.descriptor, atlas, source.Name()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func loadFont(o options) (*text.FontSource, error) {
	opts := []text.SourceOption{text.WithParser(o.parser)}

	switch {
	case o.fontPath != "":
		return text.NewFontSourceFromFile(o.fontPath, opts...)
	case o.fontName != "":
		path, err := findfont.Find(o.fontName)
		if err != nil {
			return nil, fmt.Errorf("find font %q: %w", o.fontName, err)
		}
		return text.NewFontSourceFromFile(path, opts...)
	default:
		return text.NewFontSource(gomono.TTF, opts...)
	}
}

func buildConfig(o options, font *text.Provider) (fontatlas.Config, error) {
	cfg := fontatlas.DefaultConfig(font)
	cfg.FontSize = o.size
	cfg.CellSize.X, cfg.CellSize.Y = o.cellWidth, o.cellHeight
	cfg.Columns = o.columns

	var err error
	if o.glyphs == "custom" {
		cfg.Glyphs = charset.Normalize(o.custom)
	} else if cfg.Glyphs, err = charset.Named(o.glyphs); err != nil {
		return cfg, err
	}

	if cfg.Policy, err = fontatlas.ParsePolicy(o.policy); err != nil {
		return cfg, err
	}
	if cfg.Background, err = fontatlas.ParseHex(o.bg); err != nil {
		return cfg, err
	}
	if cfg.Foreground, err = fontatlas.ParseHex(o.fg); err != nil {
		return cfg, err
	}

	if o.vOffset == "auto" {
		if cfg.VerticalOffset, err = font.Descent(o.size); err != nil {
			return cfg, err
		}
	} else if cfg.VerticalOffset, err = strconv.Atoi(o.vOffset); err != nil {
		return cfg, fmt.Errorf("-voffset: %w", err)
	}

	return cfg, cfg.Validate()
}
