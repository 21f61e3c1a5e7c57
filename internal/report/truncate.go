package report

import "github.com/mattn/go-runewidth"

// Ellipsis marks a value shortened for display.
const Ellipsis = "..."

// Truncate shortens s to at most width terminal columns, ending with
// Ellipsis when anything was cut. Wide runes count as two columns.
// A non-positive width leaves s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, Ellipsis)
}
