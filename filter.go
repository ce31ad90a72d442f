package fontatlas

import "strings"

// Resolve applies policy to the characters of input that font cannot render
// and returns the string to lay out.
//
// The set of unsupported characters is collected in one pass over input and
// applied in a second pass, so repeated characters are all treated alike.
// PolicyEmpty keeps the rune count of input; PolicyRemove keeps the relative
// order of the surviving characters. Resolving an already resolved string
// with the same font and policy returns it unchanged.
func Resolve(input string, font GlyphMetricsProvider, policy UnsupportedGlyphPolicy) string {
	if input == "" || font == nil {
		return input
	}
	if policy != PolicyEmpty && policy != PolicyRemove {
		return input
	}

	unsupported := make(map[rune]struct{})
	for _, r := range input {
		if _, seen := unsupported[r]; seen {
			continue
		}
		if !font.HasGlyph(r) {
			unsupported[r] = struct{}{}
		}
	}
	if len(unsupported) == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if _, drop := unsupported[r]; !drop {
			b.WriteRune(r)
			continue
		}
		if policy == PolicyEmpty {
			b.WriteRune(' ')
		}
	}
	out := b.String()

	Logger().Debug("fontatlas: resolved unsupported glyphs",
		"policy", policy.String(),
		"unsupported", len(unsupported),
		"before", input,
		"after", out)
	return out
}
