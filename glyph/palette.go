package glyph

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultRamp is a 70-step ramp ordered from darkest to brightest.
const DefaultRamp = " .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"

// MaxIntensity is the brightest value accepted by [Palette.Map].
const MaxIntensity = 255

// ErrInvalidPalette indicates a palette that cannot map intensities.
var ErrInvalidPalette = errors.New("invalid palette")

// columns measures glyph width. Ambiguous-width glyphs such as block
// shades count as one column regardless of locale.
var columns = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false

	return c
}()

// Default is the palette built from [DefaultRamp].
var Default = MustPalette(DefaultRamp)

// Palette is an immutable, ordered set of glyphs from darkest to brightest.
//
// Create instances with [NewPalette].
type Palette struct {
	glyphs []rune
}

// NewPalette creates a [Palette] from the characters of s, in order.
// At least two characters are required, and every character must occupy a
// single terminal column so rows keep a uniform width.
func NewPalette(s string) (Palette, error) {
	if !utf8.ValidString(s) {
		return Palette{}, fmt.Errorf("%w: not valid UTF-8", ErrInvalidPalette)
	}

	glyphs := []rune(s)
	if len(glyphs) < 2 {
		return Palette{}, fmt.Errorf("%w: need at least 2 glyphs, got %d", ErrInvalidPalette, len(glyphs))
	}

	for _, g := range glyphs {
		if g < ' ' || g == utf8.RuneError || g == 0x7f {
			return Palette{}, fmt.Errorf("%w: control or invalid glyph %q", ErrInvalidPalette, g)
		}

		if w := columns.RuneWidth(g); w != 1 {
			return Palette{}, fmt.Errorf("%w: glyph %q is %d columns wide", ErrInvalidPalette, g, w)
		}
	}

	return Palette{glyphs: glyphs}, nil
}

// MustPalette is like [NewPalette] but panics on error.
func MustPalette(s string) Palette {
	p, err := NewPalette(s)
	if err != nil {
		panic(err)
	}

	return p
}

// Len returns the number of glyphs.
func (p Palette) Len() int {
	return len(p.glyphs)
}

// String returns the glyphs as a string.
func (p Palette) String() string {
	return string(p.glyphs)
}

// Map returns the glyph for intensity v.
//
// The index is floor(v / 255 * (len-1)), clamped to the palette bounds, so
// out-of-range input maps to the first or last glyph.
func (p Palette) Map(v int) rune {
	last := len(p.glyphs) - 1

	idx := int(float64(v) / MaxIntensity * float64(last))
	if idx < 0 {
		idx = 0
	} else if idx > last {
		idx = last
	}

	return p.glyphs[idx]
}
