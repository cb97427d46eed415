package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/asciivid/source"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrOutputFormat indicates an unknown --output value.
var ErrOutputFormat = errors.New("unknown output format")

var outputFormats = []string{OutputText, OutputJSON, OutputYAML}

// Info describes a video and how it would be played.
type Info struct {
	Path string `json:"path" yaml:"path"`

	source.Metadata `yaml:",inline"`

	DurationSeconds float64 `json:"durationSeconds" yaml:"durationSeconds"`
	ASCIIWidth      int     `json:"asciiWidth"      yaml:"asciiWidth"`
	PlaybackFPS     float64 `json:"playbackFps"     yaml:"playbackFps"`
}

// WriteInfo writes info to w in the given format.
func WriteInfo(w io.Writer, info Info, format string) error {
	var (
		out []byte
		err error
	)

	switch strings.ToLower(format) {
	case OutputText:
		out = []byte(infoText(info))
	case OutputJSON:
		out, err = json.MarshalIndent(info, "", "  ")
		out = append(out, '\n')
	case OutputYAML:
		out, err = yaml.Marshal(info)
	default:
		return fmt.Errorf("%w: %q, expected one of: %s", ErrOutputFormat, format, outputFormats)
	}

	if err != nil {
		return fmt.Errorf("encode info: %w", err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("write info: %w", err)
	}

	return nil
}

func infoText(info Info) string {
	var sb strings.Builder

	sb.WriteString("Video Information:\n")
	fmt.Fprintf(&sb, "  File: %s\n", info.Path)
	fmt.Fprintf(&sb, "  Resolution: %dx%d\n", info.Width, info.Height)
	fmt.Fprintf(&sb, "  FPS: %.2f\n", info.FPS)
	fmt.Fprintf(&sb, "  Duration: %.2f seconds\n", info.DurationSeconds)
	fmt.Fprintf(&sb, "  Total Frames: %d\n", info.FrameCount)
	fmt.Fprintf(&sb, "  Codec: %s\n", info.Codec)
	fmt.Fprintf(&sb, "  ASCII Width: %d\n", info.ASCIIWidth)
	fmt.Fprintf(&sb, "  Playback FPS: %g\n", info.PlaybackFPS)

	return sb.String()
}
