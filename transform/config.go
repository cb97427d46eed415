package transform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"go.jacobcolvin.com/asciivid/glyph"
)

var scalers = map[string]draw.Scaler{
	"nearest":         draw.NearestNeighbor,
	"approx-bilinear": draw.ApproxBiLinear,
	"bilinear":        draw.BiLinear,
	"catmull-rom":     draw.CatmullRom,
}

// GetAllScalerStrings returns the accepted --scaler values, sorted.
func GetAllScalerStrings() []string {
	names := make([]string, 0, len(scalers))
	for name := range scalers {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ParseScaler returns the [draw.Scaler] registered under name.
func ParseScaler(name string) (draw.Scaler, error) {
	s, ok := scalers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scaler %q", ErrInvalidOption, name)
	}

	return s, nil
}

// Flags holds CLI flag names for frame transformation, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Width     string
	Palette   string
	Scaler    string
	ClipLimit string
	TileGrid  string
	BlurSigma string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for frame transformation.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewTransformer] to create a
// [Transformer].
type Config struct {
	Flags     Flags
	Palette   string
	Scaler    string
	Width     int
	TileGrid  int
	ClipLimit float64
	BlurSigma float32
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Width:     "width",
		Palette:   "palette",
		Scaler:    "scaler",
		ClipLimit: "clip-limit",
		TileGrid:  "tile-grid",
		BlurSigma: "blur-sigma",
	}

	return f.NewConfig()
}

// RegisterFlags adds transformation flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&c.Width, c.Flags.Width, "w", DefaultWidth,
		"output width in characters")
	flags.StringVar(&c.Palette, c.Flags.Palette, glyph.DefaultRamp,
		"glyphs ordered from darkest to brightest")
	flags.StringVar(&c.Scaler, c.Flags.Scaler, "approx-bilinear",
		fmt.Sprintf("resampling filter, one of: %s", GetAllScalerStrings()))
	flags.Float64Var(&c.ClipLimit, c.Flags.ClipLimit, DefaultClipLimit,
		"contrast equalization clip limit (0 disables)")
	flags.IntVar(&c.TileGrid, c.Flags.TileGrid, DefaultTileGrid,
		"contrast equalization tiles per axis")
	flags.Float32Var(&c.BlurSigma, c.Flags.BlurSigma, DefaultBlurSigma,
		"smoothing blur sigma (0 disables)")
}

// RegisterCompletions registers shell completions for transformation flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Scaler,
		cobra.FixedCompletions(GetAllScalerStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Scaler, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.Width, c.Flags.Palette, c.Flags.ClipLimit, c.Flags.TileGrid, c.Flags.BlurSigma,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// NewTransformer validates c and creates a [Transformer].
func (c *Config) NewTransformer() (*Transformer, error) {
	if c.Width <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidOption, c.Flags.Width, c.Width)
	}

	if c.TileGrid <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidOption, c.Flags.TileGrid, c.TileGrid)
	}

	if c.ClipLimit < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidOption, c.Flags.ClipLimit)
	}

	if c.BlurSigma < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidOption, c.Flags.BlurSigma)
	}

	palette, err := glyph.NewPalette(c.Palette)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	scaler, err := ParseScaler(c.Scaler)
	if err != nil {
		return nil, err
	}

	return New(
		WithWidth(c.Width),
		WithPalette(palette),
		WithScaler(scaler),
		WithClipLimit(c.ClipLimit),
		WithTileGrid(c.TileGrid),
		WithBlurSigma(c.BlurSigma),
	), nil
}
