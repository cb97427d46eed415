package source

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
)

// DefaultPatternFPS is the frame rate of a [Pattern] without an "@FPS"
// suffix.
const DefaultPatternFPS = 8

// Pattern generates a synthetic clip: a bright ring moving vertically over a
// gradient background crossed by grid lines. It is useful for trying out
// settings and for tests, since it needs no decoder.
//
// Create instances with [NewPattern] or [ParsePattern].
type Pattern struct {
	img  *image.RGBA
	meta Metadata
	next int
}

// NewPattern creates a [Pattern] of n frames of w x h pixels.
func NewPattern(w, h, n int, fps float64) (*Pattern, error) {
	if w <= 0 || h <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: pattern needs positive size and frame count, got %dx%dx%d",
			ErrUnavailable, w, h, n)
	}

	if fps <= 0 {
		fps = DefaultPatternFPS
	}

	return &Pattern{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		meta: Metadata{
			Codec:      "ptrn",
			Width:      w,
			Height:     h,
			FrameCount: n,
			FPS:        fps,
		},
	}, nil
}

// ParsePattern parses "WxHxN" or "WxHxN@FPS" and creates a [Pattern].
func ParsePattern(desc string) (*Pattern, error) {
	dims, rate, hasRate := strings.Cut(desc, "@")

	parts := strings.Split(dims, "x")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: pattern %q: want WxHxN[@FPS]", ErrUnavailable, desc)
	}

	var vals [3]int

	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %w", ErrUnavailable, desc, err)
		}

		vals[i] = v
	}

	var fps float64

	if hasRate {
		f, err := strconv.ParseFloat(rate, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: pattern %q: invalid fps %q", ErrUnavailable, desc, rate)
		}

		fps = f
	}

	return NewPattern(vals[0], vals[1], vals[2], fps)
}

// Metadata returns the pattern metadata.
func (p *Pattern) Metadata() Metadata {
	return p.meta
}

// Next draws the next frame.
func (p *Pattern) Next() (image.Image, error) {
	if p.next >= p.meta.FrameCount {
		return nil, io.EOF
	}

	p.draw(p.next)
	p.next++

	return p.img, nil
}

// Close is a no-op.
func (p *Pattern) Close() error {
	return nil
}

func (p *Pattern) draw(n int) {
	w, h := p.meta.Width, p.meta.Height
	short := float64(min(w, h))

	cx := float64(w) / 2
	cy := float64(h)/2 + float64(h)/5*math.Sin(float64(n)*0.15)
	outer := short/8 + short/13*math.Sin(float64(n)*0.2)
	inner := outer / 2
	grid := max(min(w, h)/8, 2)

	for y := range h {
		v := 50 + float64(y)/float64(h)*100
		bg := color.RGBA{R: uint8(v), G: uint8(v / 2), B: uint8(v / 3), A: 255}

		for x := range w {
			c := bg

			if x%grid == 0 || y%grid == 0 {
				c = color.RGBA{R: 150, G: 150, B: 150, A: 255}
			}

			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)

			switch {
			case d <= inner:
				c = color.RGBA{R: 100, G: 100, B: 100, A: 255}
			case d <= outer:
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}

			p.img.SetRGBA(x, y, c)
		}
	}
}
