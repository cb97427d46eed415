package transform

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"

	"go.jacobcolvin.com/asciivid/glyph"
)

// Defaults used by [New] and [NewConfig].
const (
	DefaultWidth     = 120
	DefaultClipLimit = 2.0
	DefaultTileGrid  = 8
	DefaultBlurSigma = 0.5
)

var (
	// ErrInvalidFrame indicates a frame with no pixels.
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrInvalidOption indicates an unusable transformer setting.
	ErrInvalidOption = errors.New("invalid option")
)

// Transformer turns color frames into equalized grayscale frames of a fixed
// width.
//
// Create instances with [New].
type Transformer struct {
	scaler    draw.Scaler
	palette   glyph.Palette
	width     int
	tileGrid  int
	clipLimit float64
	blurSigma float32
}

// Option configures a [Transformer].
type Option func(*Transformer)

// New creates a [Transformer] with the given options.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		scaler:    draw.ApproxBiLinear,
		palette:   glyph.Default,
		width:     DefaultWidth,
		tileGrid:  DefaultTileGrid,
		clipLimit: DefaultClipLimit,
		blurSigma: DefaultBlurSigma,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithWidth sets the output width in columns.
func WithWidth(width int) Option {
	return func(t *Transformer) {
		t.width = width
	}
}

// WithScaler sets the resampling filter.
func WithScaler(s draw.Scaler) Option {
	return func(t *Transformer) {
		t.scaler = s
	}
}

// WithPalette sets the palette used by [Transformer.Convert].
func WithPalette(p glyph.Palette) Option {
	return func(t *Transformer) {
		t.palette = p
	}
}

// WithClipLimit sets the equalization clip limit. Zero disables
// equalization.
func WithClipLimit(limit float64) Option {
	return func(t *Transformer) {
		t.clipLimit = limit
	}
}

// WithTileGrid sets the number of equalization tiles along each axis.
func WithTileGrid(n int) Option {
	return func(t *Transformer) {
		t.tileGrid = n
	}
}

// WithBlurSigma sets the Gaussian blur sigma. Zero disables smoothing.
func WithBlurSigma(sigma float32) Option {
	return func(t *Transformer) {
		t.blurSigma = sigma
	}
}

// Width returns the configured output width.
func (t *Transformer) Width() int {
	return t.width
}

// Palette returns the palette used by [Transformer.Convert].
func (t *Transformer) Palette() glyph.Palette {
	return t.palette
}

// TargetSize returns the output dimensions for a source of srcW x srcH
// pixels: the configured width, and the height that keeps the aspect ratio.
func (t *Transformer) TargetSize(srcW, srcH int) (int, int, error) {
	if t.width <= 0 {
		return 0, 0, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidOption, t.width)
	}

	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidFrame, srcW, srcH)
	}

	h := int(math.Round(float64(srcH) * float64(t.width) / float64(srcW)))

	return t.width, max(h, 1), nil
}

// Transform resizes img and returns its equalized, smoothed luminance.
func (t *Transformer) Transform(img image.Image) (*image.Gray, error) {
	src := img.Bounds()

	w, h, err := t.TargetSize(src.Dx(), src.Dy())
	if err != nil {
		return nil, err
	}

	resized := image.NewRGBA(image.Rect(0, 0, w, h))
	t.scaler.Scale(resized, resized.Bounds(), img, src, draw.Src, nil)

	gray := image.NewGray(resized.Bounds())
	gift.New(gift.Grayscale()).Draw(gray, resized)

	if t.clipLimit > 0 {
		gray = equalize(gray, t.clipLimit, max(t.tileGrid, 1))
	}

	if t.blurSigma > 0 {
		smoothed := image.NewGray(gray.Bounds())
		gift.New(gift.GaussianBlur(t.blurSigma)).Draw(smoothed, gray)

		gray = smoothed
	}

	return gray, nil
}

// Convert transforms img and maps it through the palette.
func (t *Transformer) Convert(img image.Image) (glyph.Frame, error) {
	gray, err := t.Transform(img)
	if err != nil {
		return nil, err
	}

	return glyph.Build(gray, t.palette), nil
}
