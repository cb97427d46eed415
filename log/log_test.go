package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/log"
)

func TestParse(t *testing.T) {
	t.Parallel()

	levels := map[string]log.Level{
		"error":   log.LevelError,
		"Warning": log.LevelWarn,
		"warn":    log.LevelWarn,
		"INFO":    log.LevelInfo,
		"debug":   log.LevelDebug,
	}

	for in, want := range levels {
		got, err := log.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	formats := map[string]log.Format{
		"Text":   log.FormatText,
		"json":   log.FormatJSON,
		"LOGFMT": log.FormatLogfmt,
	}

	for in, want := range formats {
		got, err := log.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := log.ParseLevel("trace")
	require.ErrorIs(t, err, log.ErrUnknownLogLevel)

	_, err = log.ParseFormat("xml")
	require.ErrorIs(t, err, log.ErrUnknownLogFormat)
}

func TestTextHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level     log.Level
		wantDebug bool
	}{
		"info hides frame detail": {level: log.LevelInfo},
		"debug shows frame detail": {level: log.LevelDebug, wantDebug: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(log.NewHandler(&buf, tc.level, log.FormatText))
			logger.Info("frames loaded", slog.Int("count", 3))
			logger.Debug("rendered frame", slog.Int("left", 35))

			out := buf.String()
			assert.Contains(t, out, "INFO")
			assert.Contains(t, out, "frames loaded")
			assert.Contains(t, out, "count=3")
			assert.NotContains(t, out, "\x1b[", "no color when not a terminal")
			assert.Equal(t, tc.wantDebug, strings.Contains(out, "left=35"))
		})
	}
}

func TestSourceOnlyAtDebug(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format     log.Format
		level      log.Level
		wantSource bool
	}{
		"json info":    {format: log.FormatJSON, level: log.LevelInfo},
		"json debug":   {format: log.FormatJSON, level: log.LevelDebug, wantSource: true},
		"logfmt warn":  {format: log.FormatLogfmt, level: log.LevelWarn},
		"logfmt debug": {format: log.FormatLogfmt, level: log.LevelDebug, wantSource: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			slog.New(log.NewHandler(&buf, tc.level, tc.format)).Error("write output")

			out := buf.String()
			assert.Contains(t, out, "write output")
			assert.Equal(t, tc.wantSource, strings.Contains(out, "log_test.go"))

			if tc.format == log.FormatJSON {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "ERROR", entry["level"])
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(log.NewHandler(&buf, log.LevelWarn, log.FormatLogfmt))
	logger.Info("starting playback")
	logger.Warn("close source")

	assert.NotContains(t, buf.String(), "starting playback")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level, format string
		ok            bool
	}{
		"text":           {level: "info", format: "text", ok: true},
		"json":           {level: "debug", format: "json", ok: true},
		"bad level":      {level: "loud", format: "text"},
		"bad format":     {level: "info", format: "xml"},
		"empty level":    {level: "", format: "text"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := log.NewHandlerFromStrings(&bytes.Buffer{}, tc.level, tc.format)
			if !tc.ok {
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				assert.Nil(t, h)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	assert.Equal(t, string(log.DefaultLevel), cfg.Level)
	assert.Equal(t, string(log.DefaultFormat), cfg.Format)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--log-level=debug", "--log-format=logfmt"}))

	var buf bytes.Buffer

	h, err := cfg.NewHandler(&buf)
	require.NoError(t, err)

	slog.New(h).Debug("rendered frame", slog.Int("frame", 3))
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "frame=3")

	assert.Contains(t, flags.Lookup("log-format").Usage, "text")
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	for flag, want := range map[string][]string{
		"log-level":  {"error", "warn", "info", "debug"},
		"log-format": {"json", "logfmt", "text"},
	} {
		fn, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok, flag)

		values, directive := fn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Equal(t, want, values)
	}
}
