package fontatlas

// GeneratorOption configures a Generator during creation.
//
// Example:
//
//	gen := fontatlas.NewGenerator(backend, fontatlas.WithCloneBitmaps(true))
type GeneratorOption func(*generatorOptions)

// generatorOptions holds optional configuration for Generator creation.
type generatorOptions struct {
	memoize      bool
	cloneBitmaps bool
}

// defaultGeneratorOptions returns the default generator options.
func defaultGeneratorOptions() generatorOptions {
	return generatorOptions{
		memoize:      true,
		cloneBitmaps: false,
	}
}

// WithMemoize enables or disables skipping rebuilds whose inputs did not
// change since the last successful one. Enabled by default.
func WithMemoize(enabled bool) GeneratorOption {
	return func(o *generatorOptions) {
		o.memoize = enabled
	}
}

// WithCloneBitmaps makes every Atlas carry its own copy of the pixels
// instead of the rasterizer's reused bitmap. Use this when atlases from
// several rebuilds are kept alive at the same time.
func WithCloneBitmaps(enabled bool) GeneratorOption {
	return func(o *generatorOptions) {
		o.cloneBitmaps = enabled
	}
}
