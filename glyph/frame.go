package glyph

import (
	"image"
	"strings"
	"unicode/utf8"
)

// Frame is one rendered frame: rows of glyphs in top-to-bottom order.
// Every row has the same number of glyphs.
type Frame []string

// Width returns the number of glyphs per row.
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}

	return utf8.RuneCountInString(f[0])
}

// Height returns the number of rows.
func (f Frame) Height() int {
	return len(f)
}

// Build maps every pixel of img through p, one row string per pixel row.
func Build(img *image.Gray, p Palette) Frame {
	b := img.Bounds()
	rows := make(Frame, 0, b.Dy())

	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y++ {
		sb.Reset()
		sb.Grow(b.Dx())

		for x := b.Min.X; x < b.Max.X; x++ {
			sb.WriteRune(p.Map(int(img.GrayAt(x, y).Y)))
		}

		rows = append(rows, sb.String())
	}

	return rows
}
