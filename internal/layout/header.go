package layout

import "strings"

const (
	horizontal = "─"
	downTee    = "┬"
)

// Header returns the two-line banner shown above the records: a full-width
// rule followed by title, then a rule with tees where the gutter borders sit.
func Header(title string, width int) []string {
	if width < 0 {
		width = 0
	}
	top := strings.Repeat(horizontal, width) + title

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i == 0 || i == GutterWidth-BorderWidth {
			b.WriteString(downTee)
			continue
		}
		b.WriteString(horizontal)
	}
	return []string{top, b.String()}
}
