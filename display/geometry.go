package display

import (
	"os"

	"golang.org/x/term"

	"go.jacobcolvin.com/asciivid/layout"
)

// GeometryProvider reports the current size of the output device.
type GeometryProvider interface {
	Geometry() layout.Geometry
}

// TerminalGeometry polls the size of a terminal file descriptor.
//
// Create instances with [NewTerminalGeometry].
type TerminalGeometry struct {
	fd int
}

// NewTerminalGeometry creates a [TerminalGeometry] for f.
func NewTerminalGeometry(f *os.File) *TerminalGeometry {
	return &TerminalGeometry{fd: int(f.Fd())}
}

// Geometry returns the terminal size, or [layout.DefaultGeometry] when it
// cannot be read.
func (t *TerminalGeometry) Geometry() layout.Geometry {
	cols, rows, err := term.GetSize(t.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return layout.DefaultGeometry
	}

	return layout.Geometry{Cols: cols, Rows: rows}
}

// IsTerminal reports whether the descriptor is a terminal.
func (t *TerminalGeometry) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

// StaticGeometry always reports the same size.
type StaticGeometry layout.Geometry

// Geometry returns g.
func (g StaticGeometry) Geometry() layout.Geometry {
	return layout.Geometry(g)
}
