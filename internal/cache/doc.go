// Package cache provides the small soft-limit cache used to keep rasterized
// glyph masks around between font texture rebuilds.
//
//	masks := cache.New[glyphKey, *GlyphImage](1024)
//	img, err := masks.GetOrCreate(key, rasterize)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
