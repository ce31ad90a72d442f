package text

import (
	"fmt"
	"os"
	"sync"

	"github.com/gogpu/fontatlas"
	"golang.org/x/image/font/opentype"
)

// FontSource represents a loaded font file.
// One FontSource can back several Providers at different settings.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	// Font data
	data   []byte
	parsed ParsedFont     // coverage and naming (pluggable backend)
	font   *opentype.Font // outlines for rasterization

	// Metadata
	name       string
	parserName string

	mu       sync.Mutex
	coverage *coverageMap
	closed   bool
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, found := getParser(config.parserName)
	parserName := config.parserName
	if !found {
		fontatlas.Logger().Warn("text: unknown font parser, using default",
			"parser", config.parserName, "default", defaultParserName)
		parserName = defaultParserName
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parsed, err := parser.Parse(dataCopy)
	if err != nil {
		return nil, err
	}

	// The ximage parser already holds the outlines; other parsers need a
	// second parse for rasterization.
	var otf *opentype.Font
	if xp, ok := parsed.(*ximageParsedFont); ok {
		otf = xp.font
	} else {
		otf, err = opentype.Parse(dataCopy)
		if err != nil {
			return nil, fmt.Errorf("text: failed to parse font outlines: %w", err)
		}
	}

	s := &FontSource{
		data:       dataCopy,
		parsed:     parsed,
		font:       otf,
		parserName: parserName,
		coverage:   newCoverageMap(),
	}
	s.addr = s // Self-reference for copy detection
	s.name = extractFontName(parsed, otf)

	fontatlas.Logger().Debug("text: font loaded",
		"name", s.name, "parser", parserName, "bytes", len(dataCopy))
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// ParserName returns the name of the parser that loaded the font.
func (s *FontSource) ParserName() string {
	s.copyCheck()
	return s.parserName
}

// Parsed returns the parsed font for advanced operations.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	return s.parsed
}

// HasGlyph reports whether the font maps r to a real glyph. Results are
// cached per rune. A closed source covers nothing.
func (s *FontSource) HasGlyph(r rune) bool {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if has, checked := s.coverage.get(r); checked {
		return has
	}
	has := s.parsed.GlyphIndex(r) != 0
	s.coverage.set(r, has)
	return has
}

// outlines returns the font used for rasterization.
func (s *FontSource) outlines() (*opentype.Font, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSourceClosed
	}
	return s.font, nil
}

// Close releases resources associated with the FontSource.
// Providers created from this source stop accepting new glyphs after Close.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.parsed = nil
	s.font = nil
	s.coverage.reset()
	s.closed = true
	return nil
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font,
// falling back to the outline font's naming table.
func extractFontName(parsed ParsedFont, otf *opentype.Font) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	if _, ok := parsed.(*ximageParsedFont); !ok {
		xp := &ximageParsedFont{font: otf}
		if name := xp.Name(); name != "" {
			return name
		}
	}
	return "Unknown Font"
}
