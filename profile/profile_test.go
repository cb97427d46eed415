package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/profile"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	assert.False(t, cfg.Enabled())
	assert.Empty(t, cfg.CPUProfile)
	assert.Empty(t, cfg.Trace)
	assert.Zero(t, cfg.MemProfileRate)
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args    []string
		check   func(*testing.T, *profile.Config)
		enabled bool
	}{
		"defaults": {
			check: func(t *testing.T, cfg *profile.Config) {
				t.Helper()

				assert.Equal(t, 512*1024, cfg.MemProfileRate)
				assert.Equal(t, 1, cfg.BlockProfileRate)
			},
		},
		"cpu and trace": {
			args:    []string{"--cpu-profile=cpu.prof", "--trace=run.trace"},
			enabled: true,
			check: func(t *testing.T, cfg *profile.Config) {
				t.Helper()

				assert.Equal(t, "cpu.prof", cfg.CPUProfile)
				assert.Equal(t, "run.trace", cfg.Trace)
			},
		},
		"snapshots and rates": {
			args: []string{
				"--heap-profile=heap.prof",
				"--block-profile=block.prof",
				"--mem-profile-rate=1024",
				"--block-profile-rate=100",
			},
			enabled: true,
			check: func(t *testing.T, cfg *profile.Config) {
				t.Helper()

				assert.Equal(t, "heap.prof", cfg.HeapProfile)
				assert.Equal(t, "block.prof", cfg.BlockProfile)
				assert.Equal(t, 1024, cfg.MemProfileRate)
				assert.Equal(t, 100, cfg.BlockProfileRate)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := profile.NewConfig()
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)

			require.NoError(t, flags.Parse(tc.args))
			assert.Equal(t, tc.enabled, cfg.Enabled())
			tc.check(t, cfg)
		})
	}
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	for _, flag := range []string{"mem-profile-rate", "block-profile-rate"} {
		completionFn, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok, flag)

		values, directive := completionFn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Nil(t, values)
	}

	_, ok := cmd.GetFlagCompletionFunc("cpu-profile")
	assert.False(t, ok)
}

func TestProfilerDisabled(t *testing.T) {
	t.Parallel()

	p := profile.NewConfig().NewProfiler()

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}

// Not parallel: CPU profiling and tracing are process-wide.
func TestProfilerWritesFiles(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{
		"--cpu-profile=" + filepath.Join(dir, "cpu.prof"),
		"--trace=" + filepath.Join(dir, "run.trace"),
		"--heap-profile=" + filepath.Join(dir, "heap.prof"),
		"--block-profile=" + filepath.Join(dir, "block.prof"),
	}))

	p := cfg.NewProfiler()
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())

	for _, name := range []string{"cpu.prof", "run.trace", "heap.prof", "block.prof"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestProfilerBadPath(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cfg.HeapProfile = filepath.Join(t.TempDir(), "missing", "heap.prof")

	p := cfg.NewProfiler()
	require.NoError(t, p.Start())
	require.Error(t, p.Stop())
}
