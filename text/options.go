package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype;
// "gotext" uses github.com/go-text/typesetting.
//
// Custom parsers can be registered with RegisterParser. An unknown name
// falls back to the default parser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// Default provider settings.
const (
	DefaultInitialTextureSize = 256
	DefaultMaxTextureSize     = 4096
	DefaultGlyphPadding       = 1
	DefaultMaskCacheLimit     = 2048
)

// ProviderOption configures a Provider.
type ProviderOption func(*providerConfig)

// providerConfig holds configuration for Provider.
type providerConfig struct {
	initialSize    int
	maxSize        int
	padding        int
	alphaThreshold uint8
	cacheLimit     int
}

func defaultProviderConfig() providerConfig {
	return providerConfig{
		initialSize: DefaultInitialTextureSize,
		maxSize:     DefaultMaxTextureSize,
		padding:     DefaultGlyphPadding,
		cacheLimit:  DefaultMaskCacheLimit,
	}
}

// WithTextureSize sets the initial and maximum edge length of the square
// glyph texture. The texture doubles from initial up to max as glyphs are
// requested. Non-positive values keep the defaults.
func WithTextureSize(initial, maxSize int) ProviderOption {
	return func(c *providerConfig) {
		if initial > 0 {
			c.initialSize = initial
		}
		if maxSize > 0 {
			c.maxSize = maxSize
		}
	}
}

// WithPadding sets the gap in texels between packed glyphs.
func WithPadding(padding int) ProviderOption {
	return func(c *providerConfig) {
		c.padding = max(padding, 0)
	}
}

// WithAlphaThreshold binarizes glyph coverage: texels at or above
// threshold become opaque and the rest transparent. Zero keeps the
// antialiased coverage. Pixel fonts usually want 128.
func WithAlphaThreshold(threshold uint8) ProviderOption {
	return func(c *providerConfig) {
		c.alphaThreshold = threshold
	}
}

// WithMaskCacheLimit sets the soft limit of the rasterized glyph cache.
// A value of 0 disables the limit.
func WithMaskCacheLimit(n int) ProviderOption {
	return func(c *providerConfig) {
		c.cacheLimit = max(n, 0)
	}
}
