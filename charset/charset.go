// Package charset provides the glyph sets an atlas is usually built from.
package charset

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// cp437Controls are the glyphs IBM PC hardware shows for the control bytes
// 0x00-0x1F. Byte 0x00 is drawn blank.
const cp437Controls = " ☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼"

// cp437Delete is the glyph for byte 0x7F.
const cp437Delete = '⌂'

// CodePage437 returns the 256 glyphs of IBM Code Page 437 in byte order,
// with the graphical forms of the control bytes.
func CodePage437() string {
	var b strings.Builder
	b.Grow(256 * 3)
	b.WriteString(cp437Controls)
	for c := 0x20; c <= 0xff; c++ {
		if c == 0x7f {
			b.WriteRune(cp437Delete)
			continue
		}
		b.WriteRune(charmap.CodePage437.DecodeByte(byte(c)))
	}
	return b.String()
}

// ASCII returns the printable ASCII characters, space through tilde.
func ASCII() string {
	return rangeString(0x20, 0x7e)
}

// Latin1 returns printable ASCII followed by the printable Latin-1
// supplement (U+00A0 through U+00FF).
func Latin1() string {
	return ASCII() + rangeString(0xa0, 0xff)
}

func rangeString(lo, hi rune) string {
	var b strings.Builder
	for r := lo; r <= hi; r++ {
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize converts a user supplied glyph string to NFC so that a base
// letter followed by a combining mark becomes the single precomposed
// character, and drops invalid UTF-8.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return norm.NFC.String(s)
}

// Names lists the glyph sets Named understands.
var Names = []string{"cp437", "ascii", "latin1"}

// Named returns the glyph set called name.
func Named(name string) (string, error) {
	switch strings.ToLower(name) {
	case "cp437":
		return CodePage437(), nil
	case "ascii":
		return ASCII(), nil
	case "latin1":
		return Latin1(), nil
	}
	return "", fmt.Errorf("charset: unknown glyph set %q", name)
}
