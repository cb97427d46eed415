package log

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Defaults for the log flags. Text output suits an interactive terminal,
// where logs share the screen with playback on stderr.
const (
	DefaultLevel  = LevelInfo
	DefaultFormat = FormatText
)

// Flags holds CLI flag names for log configuration.
type Flags struct {
	Level  string
	Format string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:  f,
		Level:  string(DefaultLevel),
		Format: string(DefaultFormat),
	}
}

// Config holds the log level and format chosen on the command line.
//
// Create instances with [NewConfig]. Loading progress and the playback
// summary are logged at info; per-frame layout details only at debug.
type Config struct {
	Flags  Flags
	Level  string
	Format string
}

// NewConfig returns a [Config] with default flag names and values.
func NewConfig() *Config {
	return Flags{
		Level:  "log-level",
		Format: "log-format",
	}.NewConfig()
}

// RegisterFlags adds --log-level and --log-format to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, string(DefaultLevel),
		fmt.Sprintf("stderr log level, one of: %s (debug adds source locations)", GetAllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, string(DefaultFormat),
		fmt.Sprintf("stderr log format, one of: %s (text is colored on a terminal)", GetAllFormatStrings()))
}

// RegisterCompletions completes the level and format flags with their
// accepted values.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for flag, values := range map[string][]string{
		c.Flags.Level:  GetAllLevelStrings(),
		c.Flags.Format: GetAllFormatStrings(),
	} {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// NewHandler creates a [Handler] writing to w, normally stderr so logs do
// not interleave with frames on stdout.
func (c *Config) NewHandler(w io.Writer) (Handler, error) {
	return NewHandlerFromStrings(w, c.Level, c.Format)
}
