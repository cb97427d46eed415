package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/asciivid/display"
)

// Defaults for playback flags.
const (
	DefaultFPS        = 30.0
	DefaultStartDelay = time.Second
)

// ErrInvalidOption indicates an out-of-range playback setting.
var ErrInvalidOption = errors.New("invalid playback option")

// Flags holds CLI flag names for playback configuration.
type Flags struct {
	FPS        string
	Title      string
	StartDelay string
	TUI        string
}

// Config holds CLI flag values for playback.
//
// Create instances with [NewConfig].
type Config struct {
	Flags      Flags
	Title      string
	FPS        float64
	StartDelay time.Duration
	TUI        bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			FPS:        "fps",
			Title:      "title",
			StartDelay: "start-delay",
			TUI:        "tui",
		},
	}
}

// RegisterFlags adds playback flags to the given [pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.Float64VarP(&c.FPS, c.Flags.FPS, "f", DefaultFPS, "target playback frame rate")
	flags.StringVar(&c.Title, c.Flags.Title, display.DefaultTitle, "header title line")
	flags.DurationVar(&c.StartDelay, c.Flags.StartDelay, DefaultStartDelay, "pause between loading and playback")
	flags.BoolVar(&c.TUI, c.Flags.TUI, false, "play in a full-screen interactive view")
}

// RegisterCompletions registers shell completions for playback flags.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, name := range []string{c.Flags.FPS, c.Flags.Title, c.Flags.StartDelay} {
		err := cmd.RegisterFlagCompletionFunc(name, cobra.NoFileCompletions)
		if err != nil {
			return fmt.Errorf("register %s completion: %w", name, err)
		}
	}

	return nil
}

// Validate reports whether the configured values are usable.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %g", ErrInvalidOption, c.FPS)
	}

	if c.StartDelay < 0 {
		return fmt.Errorf("%w: start delay must not be negative, got %s", ErrInvalidOption, c.StartDelay)
	}

	return nil
}
