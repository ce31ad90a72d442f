package charset

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCodePage437(t *testing.T) {
	s := CodePage437()
	runes := []rune(s)
	if len(runes) != 256 {
		t.Fatalf("len = %d, want 256", len(runes))
	}

	tests := []struct {
		index int
		want  rune
	}{
		{0x00, ' '},
		{0x01, '☺'},
		{0x1f, '▼'},
		{0x20, ' '},
		{0x41, 'A'},
		{0x7e, '~'},
		{0x7f, '⌂'},
		{0x80, 'Ç'},
		{0xb0, '░'},
		{0xdb, '█'},
		{0xe0, 'α'},
		{0xfe, '■'},
	}
	for _, tt := range tests {
		if runes[tt.index] != tt.want {
			t.Errorf("CodePage437()[%#x] = %q, want %q", tt.index, runes[tt.index], tt.want)
		}
	}
}

func TestASCIIAndLatin1(t *testing.T) {
	if got := utf8.RuneCountInString(ASCII()); got != 95 {
		t.Errorf("ASCII len = %d, want 95", got)
	}
	if !strings.HasPrefix(ASCII(), " !\"#") || !strings.HasSuffix(ASCII(), "}~") {
		t.Errorf("ASCII() = %q", ASCII())
	}
	if got := utf8.RuneCountInString(Latin1()); got != 95+96 {
		t.Errorf("Latin1 len = %d, want %d", got, 95+96)
	}
	if !strings.HasSuffix(Latin1(), "ÿ") {
		t.Error("Latin1 should end with ÿ")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "abc", "abc"},
		{"combining acute", "e\u0301", "\u00e9"},
		{"invalid utf8", "a\xffb", "ab"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamed(t *testing.T) {
	for _, name := range Names {
		s, err := Named(name)
		if err != nil {
			t.Errorf("Named(%q): %v", name, err)
		}
		if s == "" {
			t.Errorf("Named(%q) is empty", name)
		}
	}
	if _, err := Named("CP437"); err != nil {
		t.Errorf("Named should be case-insensitive: %v", err)
	}
	if _, err := Named("ebcdic"); err == nil {
		t.Error("Named(ebcdic) should fail")
	}
}
