package glyph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/glyph"
)

func TestNewPalette(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantLen int
		wantErr bool
	}{
		"default ramp": {
			input:   glyph.DefaultRamp,
			wantLen: 70,
		},
		"two glyphs": {
			input:   " #",
			wantLen: 2,
		},
		"multibyte glyphs": {
			input:   " ░▒▓█",
			wantLen: 5,
		},
		"empty": {
			input:   "",
			wantErr: true,
		},
		"single glyph": {
			input:   "@",
			wantErr: true,
		},
		"control character": {
			input:   " \t#",
			wantErr: true,
		},
		"double-width glyphs": {
			input:   " 漢字",
			wantErr: true,
		},
		"zero-width combining mark": {
			input:   " a\u0301#",
			wantErr: true,
		},
		"invalid utf-8": {
			input:   " \xff#",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := glyph.NewPalette(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, glyph.ErrInvalidPalette)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantLen, p.Len())
			assert.Equal(t, tc.input, p.String())
		})
	}
}

func TestPaletteMap(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		palette string
		input   int
		want    rune
	}{
		"black is darkest": {
			palette: " .:#",
			input:   0,
			want:    ' ',
		},
		"white is brightest": {
			palette: " .:#",
			input:   255,
			want:    '#',
		},
		"floors mid values": {
			palette: " .:#",
			input:   127, // 127/255*3 = 1.49
			want:    '.',
		},
		"upper band": {
			palette: " .:#",
			input:   200, // 200/255*3 = 2.35
			want:    ':',
		},
		"negative clamps low": {
			palette: " .:#",
			input:   -40,
			want:    ' ',
		},
		"overflow clamps high": {
			palette: " .:#",
			input:   1000,
			want:    '#',
		},
		"two glyph threshold": {
			palette: "ab",
			input:   254,
			want:    'a',
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := glyph.MustPalette(tc.palette)
			assert.Equal(t, tc.want, p.Map(tc.input))
		})
	}
}

func TestPaletteMapCoversRange(t *testing.T) {
	t.Parallel()

	for _, ramp := range []string{glyph.DefaultRamp, " #", " ░▒▓█"} {
		p := glyph.MustPalette(ramp)
		runes := []rune(ramp)

		assert.Equal(t, runes[0], p.Map(0))
		assert.Equal(t, runes[len(runes)-1], p.Map(glyph.MaxIntensity))

		prev := -1

		for v := range glyph.MaxIntensity + 1 {
			g := p.Map(v)

			idx := strings.IndexRune(ramp, g)
			require.GreaterOrEqual(t, idx, 0, "glyph %q not in palette", g)

			// Byte offsets grow with rune index, so monotonic offsets mean
			// monotonic glyph order.
			assert.GreaterOrEqual(t, idx, prev, "intensity %d went darker", v)

			prev = idx
		}
	}
}

func TestMustPalettePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { glyph.MustPalette("x") })
}
