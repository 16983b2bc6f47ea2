package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHeaderLines(t *testing.T) {
	lines := Header("reads.fq", 20)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != strings.Repeat("─", 20)+"reads.fq" {
		t.Fatalf("unexpected top line: %q", lines[0])
	}
	second := []rune(lines[1])
	if len(second) != 20 {
		t.Fatalf("expected 20 glyphs, got %d", len(second))
	}
	for i, r := range second {
		want := '─'
		if i == 0 || i == 9 {
			want = '┬'
		}
		if r != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, r)
		}
	}
}

func TestHeaderNarrowWidth(t *testing.T) {
	lines := Header("x", 5)
	if lines[1] != "┬────" {
		t.Fatalf("unexpected narrow rule: %q", lines[1])
	}
	lines = Header("x", 0)
	if lines[0] != "x" || lines[1] != "" {
		t.Fatalf("unexpected zero-width header: %q", lines)
	}
}

func TestHeaderTeesAlignWithGutter(t *testing.T) {
	rule := []rune(Header("t", 40)[1])
	gutter := []rune(BlankGutter())
	if utf8.RuneCountInString(BlankGutter()) != GutterWidth {
		t.Fatalf("gutter must be %d glyphs", GutterWidth)
	}
	if gutter[0] != '│' || gutter[GutterWidth-1] != '│' {
		t.Fatalf("unexpected gutter borders: %q", string(gutter))
	}
	if rule[0] != '┬' || rule[GutterWidth-1] != '┬' {
		t.Fatalf("tees must sit above the gutter borders: %q", string(rule))
	}
}
