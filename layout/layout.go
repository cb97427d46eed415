// Package layout places a [glyph.Frame] inside a terminal.
//
// Frames are always centered horizontally. Vertical placement depends on
// orientation: landscape frames are centered in the rows left over after the
// header reserve, while portrait frames sit in the upper third of the screen
// with a balancing pad below them.
package layout

import (
	"strings"

	"go.jacobcolvin.com/asciivid/glyph"
)

const (
	// HeaderLines is the number of text lines in the playback header: title,
	// status and separator rule.
	HeaderLines = 3
	// HeaderReserve is the number of terminal rows kept free for the header
	// block and the blank space around it.
	HeaderReserve = HeaderLines + 7

	// PortraitMinTop and PortraitMaxTop bound the top padding of portrait
	// frames.
	PortraitMinTop = 5
	PortraitMaxTop = 15
	// PortraitMinBottom is the least bottom padding of portrait frames.
	PortraitMinBottom = 3
)

// Geometry is the size of the output device in character cells.
type Geometry struct {
	Cols int
	Rows int
}

// DefaultGeometry is used when the terminal size cannot be determined.
var DefaultGeometry = Geometry{Cols: 80, Rows: 24}

// Result is the padding computed for one frame.
type Result struct {
	Left     int
	Top      int
	Bottom   int
	Portrait bool
}

// Compute returns the placement of f in a terminal of size g. It is a pure
// function of its inputs; callers recompute it for every frame because the
// terminal may be resized between frames.
func Compute(f glyph.Frame, g Geometry) Result {
	w, h := f.Width(), f.Height()

	r := Result{
		Left:     max(0, (g.Cols-w)/2),
		Portrait: h > w,
	}

	if r.Portrait {
		r.Top = min(max(PortraitMinTop, g.Rows/3), PortraitMaxTop)
		r.Bottom = max(PortraitMinBottom, (g.Rows-(r.Top+h)-HeaderReserve)/2)

		return r
	}

	r.Top = max(0, (g.Rows-h-HeaderReserve)/2)

	return r
}

// Apply pads f according to r and joins it into a single block of text:
// blank lines above and below, and space-indented frame rows.
func (r Result) Apply(f glyph.Frame) string {
	var sb strings.Builder

	indent := strings.Repeat(" ", r.Left)
	lines := 0

	newline := func() {
		if lines > 0 {
			sb.WriteByte('\n')
		}

		lines++
	}

	for range r.Top {
		newline()
	}

	for _, row := range f {
		newline()
		sb.WriteString(indent)
		sb.WriteString(row)
	}

	for range r.Bottom {
		newline()
	}

	return sb.String()
}

// Lines returns the number of text lines [Result.Apply] produces for f.
func (r Result) Lines(f glyph.Frame) int {
	return r.Top + f.Height() + r.Bottom
}
