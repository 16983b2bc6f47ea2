package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap hard-wraps s into lines of at most width display columns. Sequence data
// has no word breaks, so lines are cut exactly at the boundary; concatenating
// the result always reproduces s. A rune wider than width gets its own line.
func Wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	if s == "" {
		return nil
	}
	var (
		lines     []string
		line      strings.Builder
		lineWidth int
	)
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if lineWidth+w > width && line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		line.WriteRune(r)
		lineWidth += w
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
