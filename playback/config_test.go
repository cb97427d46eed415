package playback_test

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/display"
	"go.jacobcolvin.com/asciivid/playback"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := playback.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))

	assert.InDelta(t, playback.DefaultFPS, cfg.FPS, 0)
	assert.Equal(t, display.DefaultTitle, cfg.Title)
	assert.Equal(t, time.Second, cfg.StartDelay)
	assert.False(t, cfg.TUI)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args []string
		err  error
	}{
		"custom": {
			args: []string{"-f", "12.5", "--title", "Demo", "--start-delay", "0s", "--tui"},
		},
		"zero fps": {
			args: []string{"--fps", "0"},
			err:  playback.ErrInvalidOption,
		},
		"negative fps": {
			args: []string{"--fps=-2"},
			err:  playback.ErrInvalidOption,
		},
		"negative delay": {
			args: []string{"--start-delay=-1s"},
			err:  playback.ErrInvalidOption,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := playback.NewConfig()
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)

			require.NoError(t, flags.Parse(tc.args))

			err := cfg.Validate()
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestConfigCompletions(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	cfg := playback.NewConfig()
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	for _, name := range []string{"fps", "title", "start-delay"} {
		_, ok := cmd.GetFlagCompletionFunc(name)
		assert.True(t, ok, name)
	}
}
