package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/pflag"
)

// ErrSettings indicates a settings file that cannot be read or applied.
var ErrSettings = errors.New("invalid settings file")

// Settings is the layout of the --config file. Each key is the name of the
// flag it sets; flags given on the command line take precedence.
type Settings struct {
	Width      *int     `json:"width,omitempty" jsonschema:"output width in characters" yaml:"width,omitempty"`
	Palette    *string  `json:"palette,omitempty" jsonschema:"glyphs ordered from darkest to brightest" yaml:"palette,omitempty"`
	Scaler     *string  `json:"scaler,omitempty" jsonschema:"resampling filter" yaml:"scaler,omitempty"`
	ClipLimit  *float64 `json:"clip-limit,omitempty" jsonschema:"contrast equalization clip limit (0 disables)" yaml:"clip-limit,omitempty"`
	TileGrid   *int     `json:"tile-grid,omitempty" jsonschema:"contrast equalization tiles per axis" yaml:"tile-grid,omitempty"`
	BlurSigma  *float64 `json:"blur-sigma,omitempty" jsonschema:"smoothing blur sigma (0 disables)" yaml:"blur-sigma,omitempty"`
	FPS        *float64 `json:"fps,omitempty" jsonschema:"target playback frame rate" yaml:"fps,omitempty"`
	Title      *string  `json:"title,omitempty" jsonschema:"header title line" yaml:"title,omitempty"`
	StartDelay *string  `json:"start-delay,omitempty" jsonschema:"pause before playback such as 500ms" yaml:"start-delay,omitempty"`
	TUI        *bool    `json:"tui,omitempty" jsonschema:"play in a full-screen interactive view" yaml:"tui,omitempty"`
	LogLevel   *string  `json:"log-level,omitempty" jsonschema:"log level" yaml:"log-level,omitempty"`
	LogFormat  *string  `json:"log-format,omitempty" jsonschema:"log format" yaml:"log-format,omitempty"`
}

// LoadSettings reads a YAML settings file. Unknown keys are rejected.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Settings path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSettings, err)
	}

	var s Settings

	err = yaml.UnmarshalWithOptions(data, &s, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSettings, path, err)
	}

	return &s, nil
}

// Apply sets every flag in flags that has a value in s and was not given on
// the command line.
func (s *Settings) Apply(flags *pflag.FlagSet) error {
	values := map[string]string{}

	put(values, "width", s.Width)
	put(values, "palette", s.Palette)
	put(values, "scaler", s.Scaler)
	put(values, "clip-limit", s.ClipLimit)
	put(values, "tile-grid", s.TileGrid)
	put(values, "blur-sigma", s.BlurSigma)
	put(values, "fps", s.FPS)
	put(values, "title", s.Title)
	put(values, "start-delay", s.StartDelay)
	put(values, "tui", s.TUI)
	put(values, "log-level", s.LogLevel)
	put(values, "log-format", s.LogFormat)

	for name, value := range values {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}

		err := flags.Set(name, value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSettings, name, err)
		}
	}

	return nil
}

func put[T any](values map[string]string, name string, v *T) {
	if v != nil {
		values[name] = fmt.Sprint(*v)
	}
}

// SettingsSchema returns the JSON Schema of [Settings].
func SettingsSchema() ([]byte, error) {
	schema, err := jsonschema.For[Settings](nil)
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}

	schema.Title = "asciivid settings"
	schema.Description = "Defaults for asciivid flags, loaded with --config."

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}

	return append(out, '\n'), nil
}
