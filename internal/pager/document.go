// Package pager provides the live, scrollable display of a growing document.
package pager

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Document is an append-only sequence of rendered blocks. It is owned by the
// controller's update loop and is never mutated except by Append.
type Document struct {
	lines  []string
	plain  []string
	starts []int
}

// Append adds a block to the tail of the document.
func (d *Document) Append(block []string) {
	d.starts = append(d.starts, len(d.lines))
	for _, line := range block {
		d.lines = append(d.lines, line)
		d.plain = append(d.plain, ansi.Strip(line))
	}
}

// Len returns the number of blocks appended so far.
func (d *Document) Len() int {
	return len(d.starts)
}

// LineCount returns the number of display lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Block returns the lines of block i.
func (d *Document) Block(i int) []string {
	end := len(d.lines)
	if i+1 < len(d.starts) {
		end = d.starts[i+1]
	}
	return d.lines[d.starts[i]:end]
}

// Line returns display line i.
func (d *Document) Line(i int) string {
	return d.lines[i]
}

// String joins every line with newlines.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Search finds the first line at or after from (or at or before it when
// backward) whose unstyled text contains query. An all-lowercase query
// matches case-insensitively.
func (d *Document) Search(query string, from int, backward bool) (int, bool) {
	if query == "" || len(d.plain) == 0 {
		return -1, false
	}
	fold := strings.ToLower(query) == query
	match := func(line string) bool {
		if fold {
			line = strings.ToLower(line)
		}
		return strings.Contains(line, query)
	}
	if backward {
		if from >= len(d.plain) {
			from = len(d.plain) - 1
		}
		for i := from; i >= 0; i-- {
			if match(d.plain[i]) {
				return i, true
			}
		}
		return -1, false
	}
	if from < 0 {
		from = 0
	}
	for i := from; i < len(d.plain); i++ {
		if match(d.plain[i]) {
			return i, true
		}
	}
	return -1, false
}
