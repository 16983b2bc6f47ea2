// Package layout turns scored FASTQ records into gutter-decorated blocks.
package layout

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/fqview/internal/model"
	"github.com/verte-zerg/fqview/internal/quality"
)

const (
	// BorderWidth is the width of each gutter border glyph.
	BorderWidth = 1
	// IndexWidth is the width of the read index field.
	IndexWidth = 8
	// GutterWidth is the full left gutter: border, index field, border.
	GutterWidth = BorderWidth + IndexWidth + BorderWidth

	vertical = "│"
)

// Style names a text category; a Theme maps it to terminal attributes.
type Style int

// Text categories.
const (
	StylePlain Style = iota
	StyleWarning
	StyleHealthy
	StyleMuted
)

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style Style
}

// Line is one display line: a gutter followed by styled content.
type Line struct {
	Gutter   string
	Segments []Segment
}

// Content returns the unstyled text after the gutter.
func (l Line) Content() string {
	var b strings.Builder
	for _, seg := range l.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Block is the formatted form of one record.
type Block struct {
	Lines []Line
}

// Render returns the block as display lines styled by theme.
func (b Block) Render(theme Theme) []string {
	out := make([]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		var sb strings.Builder
		sb.WriteString(line.Gutter)
		for _, seg := range line.Segments {
			sb.WriteString(theme.Render(seg.Style, seg.Text))
		}
		out = append(out, sb.String())
	}
	return out
}

// ContentWidth returns the columns left for sequence text after the gutter.
func ContentWidth(displayWidth int) int {
	w := displayWidth - GutterWidth
	if w < 1 {
		return 1
	}
	return w
}

// Format lays out rec as a summary line followed by its sequence wrapped to width.
func Format(rec model.ScoredRecord, width int, threshold float32) Block {
	name := string(rec.Record.Name)
	avg := FormatQuality(rec.AvgQuality)

	nameStyle, avgStyle := StyleHealthy, StyleMuted
	if quality.IsWarning(rec.AvgQuality, threshold) {
		nameStyle, avgStyle = StyleWarning, StyleWarning
	}
	space := Segment{Text: " ", Style: StylePlain}
	summary := Line{
		Gutter: Gutter(rec.Index),
		Segments: []Segment{
			{Text: name, Style: nameStyle},
			space,
			{Text: "Length:", Style: StyleMuted},
			space,
			{Text: strconv.Itoa(len(rec.Record.Sequence)), Style: StyleMuted},
			space,
			{Text: "| Q:", Style: StyleMuted},
			space,
			{Text: avg, Style: avgStyle},
		},
	}

	wrapped := Wrap(string(rec.Record.Sequence), width)
	lines := make([]Line, 0, len(wrapped)+1)
	lines = append(lines, summary)
	blank := BlankGutter()
	for _, w := range wrapped {
		lines = append(lines, Line{
			Gutter:   blank,
			Segments: []Segment{{Text: strings.TrimLeftFunc(w, unicode.IsSpace), Style: StylePlain}},
		})
	}
	return Block{Lines: lines}
}

// FormatQuality renders avg with the shortest decimal form of a float32.
func FormatQuality(avg float32) string {
	return strconv.FormatFloat(float64(avg), 'f', -1, 32)
}

// Gutter returns the gutter carrying a 1-based read index.
func Gutter(index int) string {
	label := strconv.Itoa(index)
	if len(label) > IndexWidth {
		label = "…" + label[len(label)-(IndexWidth-1):]
	}
	pad := IndexWidth - utf8.RuneCountInString(label)
	return vertical + label + strings.Repeat(" ", pad) + vertical
}

// BlankGutter returns the gutter used by continuation lines.
func BlankGutter() string {
	return vertical + strings.Repeat(" ", IndexWidth) + vertical
}
