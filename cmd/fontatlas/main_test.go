package main

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/fontatlas/encode"
	"github.com/gogpu/fontatlas/text"
)

func defaultOptions(dir string) options {
	return options{
		parser:     "ximage",
		backend:    "software",
		size:       8,
		glyphs:     "ascii",
		cellWidth:  8,
		cellHeight: 8,
		columns:    16,
		vOffset:    "1",
		policy:     "empty",
		bg:         "#000",
		fg:         "#fff",
		out:        filepath.Join(dir, "atlas.png"),
		scale:      2,
		gridColor:  "#32cd9659",
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	o := defaultOptions(dir)
	o.preview = filepath.Join(dir, "preview.png")
	o.grid = true
	o.descriptor = filepath.Join(dir, "atlas.json")

	if err := run(o); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(o.out)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// 95 ASCII glyphs on 16 columns: 6 rows.
	if got := img.Bounds().Size(); got.X != 128 || got.Y != 48 {
		t.Errorf("atlas size = %v, want 128x48", got)
	}

	pf, err := os.Open(o.preview)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = pf.Close() }()
	cfg, err := png.DecodeConfig(pf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 256 || cfg.Height != 96 {
		t.Errorf("preview size = %dx%d, want 256x96", cfg.Width, cfg.Height)
	}

	data, err := os.ReadFile(o.descriptor)
	if err != nil {
		t.Fatal(err)
	}
	var d encode.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatal(err)
	}
	if len(d.Glyphs) != 95 || d.Columns != 16 || d.Rows != 6 {
		t.Errorf("descriptor = %d glyphs, %dx%d cells", len(d.Glyphs), d.Columns, d.Rows)
	}
}

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*options)
		wantErr bool
		check   func(*testing.T, fontatlas.Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c fontatlas.Config) {
				if c.VerticalOffset != 1 || c.Policy != fontatlas.PolicyEmpty {
					t.Errorf("config = %+v", c)
				}
			},
		},
		{
			name:   "custom glyphs",
			mutate: func(o *options) { o.glyphs, o.custom = "custom", "éx" },
			check: func(t *testing.T, c fontatlas.Config) {
				if c.Glyphs != "éx" {
					t.Errorf("Glyphs = %q, want normalized %q", c.Glyphs, "éx")
				}
			},
		},
		{
			name:   "auto offset",
			mutate: func(o *options) { o.vOffset = "auto" },
			check: func(t *testing.T, c fontatlas.Config) {
				if c.VerticalOffset <= 0 {
					t.Errorf("auto VerticalOffset = %d, want positive", c.VerticalOffset)
				}
			},
		},
		{name: "bad glyph set", mutate: func(o *options) { o.glyphs = "klingon" }, wantErr: true},
		{name: "bad policy", mutate: func(o *options) { o.policy = "drop" }, wantErr: true},
		{name: "bad color", mutate: func(o *options) { o.fg = "#zz" }, wantErr: true},
		{name: "bad offset", mutate: func(o *options) { o.vOffset = "up" }, wantErr: true},
		{name: "zero columns", mutate: func(o *options) { o.columns = 0 }, wantErr: true},
	}

	o := defaultOptions(t.TempDir())
	source, err := loadFont(o)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = source.Close() }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := o
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			cfg, err := buildConfig(opts, text.NewProvider(source))
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestRunUnknownBackend(t *testing.T) {
	o := defaultOptions(t.TempDir())
	o.backend = "vulkan"
	if err := run(o); err == nil {
		t.Error("run with an unknown backend should fail")
	}
}
