package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/fqview/internal/model"
	"github.com/verte-zerg/fqview/internal/quality"
)

func scored(name, seq string, index int, avg float32) model.ScoredRecord {
	return model.ScoredRecord{
		Record: model.RawRecord{
			Name:     []byte(name),
			Sequence: []byte(seq),
			Quality:  []byte(strings.Repeat("I", len(seq))),
		},
		Index:      index,
		AvgQuality: avg,
	}
}

func segmentStyle(t *testing.T, line Line, text string) Style {
	t.Helper()
	for _, seg := range line.Segments {
		if seg.Text == text {
			return seg.Style
		}
	}
	t.Fatalf("segment %q not found in %q", text, line.Content())
	return StylePlain
}

func TestFormatSummaryLine(t *testing.T) {
	block := Format(scored("read1", "ACGTACGTAC", 1, 27.5), 4, quality.DefaultThreshold)
	if len(block.Lines) != 4 {
		t.Fatalf("expected summary plus 3 sequence lines, got %d", len(block.Lines))
	}
	first := block.Lines[0]
	if first.Gutter != "│1       │" {
		t.Fatalf("unexpected gutter: %q", first.Gutter)
	}
	if got := first.Content(); got != "read1 Length: 10 | Q: 27.5" {
		t.Fatalf("unexpected summary: %q", got)
	}
	for i, want := range []string{"ACGT", "ACGT", "AC"} {
		line := block.Lines[i+1]
		if line.Gutter != BlankGutter() {
			t.Fatalf("line %d: expected blank gutter, got %q", i+1, line.Gutter)
		}
		if line.Content() != want {
			t.Fatalf("line %d: expected %q, got %q", i+1, want, line.Content())
		}
	}
}

func TestFormatThresholdStyles(t *testing.T) {
	cases := []struct {
		avg      float32
		name     Style
		avgStyle Style
	}{
		{20.0, StyleHealthy, StyleMuted},
		{19.999, StyleWarning, StyleWarning},
		{15, StyleWarning, StyleWarning},
		{38.25, StyleHealthy, StyleMuted},
	}
	for _, tc := range cases {
		block := Format(scored("r", "ACGT", 3, tc.avg), 80, quality.DefaultThreshold)
		first := block.Lines[0]
		if got := segmentStyle(t, first, "r"); got != tc.name {
			t.Fatalf("avg %v: expected name style %d, got %d", tc.avg, tc.name, got)
		}
		if got := segmentStyle(t, first, FormatQuality(tc.avg)); got != tc.avgStyle {
			t.Fatalf("avg %v: expected quality style %d, got %d", tc.avg, tc.avgStyle, got)
		}
		for _, label := range []string{"Length:", "4", "| Q:"} {
			if got := segmentStyle(t, first, label); got != StyleMuted {
				t.Fatalf("avg %v: expected %q muted, got %d", tc.avg, label, got)
			}
		}
	}
}

func TestFormatGutterWidthIsUniform(t *testing.T) {
	seq := strings.Repeat("ACGTN", 37)
	for _, index := range []int{1, 42, 12345678, 123456789, 9876543210} {
		for _, width := range []int{1, 7, 50, 500} {
			block := Format(scored("r", seq, index, 30), width, quality.DefaultThreshold)
			for i, line := range block.Lines {
				if w := utf8.RuneCountInString(line.Gutter); w != GutterWidth {
					t.Fatalf("index %d width %d line %d: gutter width %d", index, width, i, w)
				}
			}
			var joined strings.Builder
			for _, line := range block.Lines[1:] {
				joined.WriteString(line.Content())
			}
			if joined.String() != seq {
				t.Fatalf("index %d width %d: sequence not preserved", index, width)
			}
		}
	}
}

func TestGutterTruncatesLongIndex(t *testing.T) {
	if got := Gutter(123456789); got != "│…3456789│" {
		t.Fatalf("unexpected gutter: %q", got)
	}
	if got := Gutter(12345678); got != "│12345678│" {
		t.Fatalf("unexpected gutter: %q", got)
	}
}

func TestFormatQuality(t *testing.T) {
	cases := map[float32]string{
		15:                "15",
		25:                "25",
		27.5:              "27.5",
		float32(58) / 3.0: "19.333334",
	}
	for in, want := range cases {
		if got := FormatQuality(in); got != want {
			t.Fatalf("FormatQuality(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderKeepsText(t *testing.T) {
	block := Format(scored("read9", "ACGT", 9, 12), 80, quality.DefaultThreshold)
	lines := block.Render(DefaultTheme)
	if len(lines) != 2 {
		t.Fatalf("expected 2 rendered lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "│9       │") {
		t.Fatalf("rendered line lost its gutter: %q", lines[0])
	}
	if !strings.Contains(lines[0], DefaultTheme.Warning.Render("read9")) {
		t.Fatalf("expected warning-styled name in %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], DefaultTheme.Plain.Render("ACGT")) {
		t.Fatalf("unexpected sequence line: %q", lines[1])
	}
}

func TestContentWidth(t *testing.T) {
	if got := ContentWidth(80); got != 70 {
		t.Fatalf("expected 70, got %d", got)
	}
	if got := ContentWidth(5); got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
}
