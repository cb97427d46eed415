// Package main provides the CLI entry point for asciivid, a terminal video
// player that draws each frame with text glyphs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/asciivid/display"
	"go.jacobcolvin.com/asciivid/layout"
	"go.jacobcolvin.com/asciivid/log"
	"go.jacobcolvin.com/asciivid/playback"
	"go.jacobcolvin.com/asciivid/profile"
	"go.jacobcolvin.com/asciivid/source"
	"go.jacobcolvin.com/asciivid/transform"
	"go.jacobcolvin.com/asciivid/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp(os.Stdout, os.Stderr).Execute(ctx, os.Args[1:])

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the configuration shared by all commands.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	logger    *slog.Logger
	profiler  *profile.Profiler
	logCfg    *log.Config
	profCfg   *profile.Config
	tfCfg     *transform.Config
	pbCfg     *playback.Config
	settings  string
	output    string
	printInfo bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		logger:  slog.New(slog.DiscardHandler),
		logCfg:  log.NewConfig(),
		profCfg: profile.NewConfig(),
		tfCfg:   transform.NewConfig(),
		pbCfg:   playback.NewConfig(),
		output:  OutputText,
	}
}

// Execute runs the command line args. Profiles are written even when the
// command fails.
func (a *app) Execute(ctx context.Context, args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	if a.profiler != nil {
		err = errors.Join(err, a.profiler.Stop())
	}

	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "asciivid [flags] <video>",
		Short: "Play a video in the terminal as text",
		Long: `asciivid decodes a video, converts every frame to text glyphs, and plays
the result in the terminal at a fixed frame rate.

The video may be any file ffmpeg can read, a directory of PNG or JPEG frames,
or a synthetic pattern such as pattern:64x48x90@24.`,
		Args:              cobra.ExactArgs(1),
		Version:           version.Short(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.printInfo {
				return a.info(cmd.Context(), args[0])
			}

			return a.play(cmd.Context(), args[0])
		},
	}

	pflags := root.PersistentFlags()
	pflags.StringVar(&a.settings, "config", "", "YAML file with flag defaults")
	a.logCfg.RegisterFlags(pflags)
	a.profCfg.RegisterFlags(pflags)
	a.tfCfg.RegisterFlags(pflags)
	a.pbCfg.RegisterFlags(pflags)

	root.Flags().BoolVar(&a.printInfo, "info", false, "print video information and exit")

	root.AddCommand(a.infoCmd(), a.schemaCmd(), a.versionCmd())

	for _, register := range []func(*cobra.Command) error{
		a.logCfg.RegisterCompletions,
		a.profCfg.RegisterCompletions,
		a.tfCfg.RegisterCompletions,
		a.pbCfg.RegisterCompletions,
	} {
		err := register(root)
		if err != nil {
			fmt.Fprintf(a.stderr, "register completions: %v\n", err)
		}
	}

	return root
}

func (a *app) infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [flags] <video>",
		Short: "Print video information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.info(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVarP(&a.output, "output", "o", OutputText,
		fmt.Sprintf("output format, one of: %s", outputFormats))

	err := cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}

	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the --config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := SettingsSchema()
			if err != nil {
				return err
			}

			_, err = a.stdout.Write(out)
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(a.stdout, version.String())
			if err != nil {
				return fmt.Errorf("write version: %w", err)
			}

			return nil
		},
	}
}

// setup applies the settings file, builds the logger, and starts profiling.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.settings != "" {
		s, err := LoadSettings(a.settings)
		if err != nil {
			return err
		}

		err = s.Apply(cmd.Flags())
		if err != nil {
			return err
		}
	}

	handler, err := a.logCfg.NewHandler(a.stderr)
	if err != nil {
		return err
	}

	a.logger = slog.New(handler)

	a.profiler = a.profCfg.NewProfiler()

	err = a.profiler.Start()
	if err != nil {
		return fmt.Errorf("start profiling: %w", err)
	}

	return nil
}

func (a *app) info(ctx context.Context, path string) error {
	err := a.pbCfg.Validate()
	if err != nil {
		return err
	}

	src, err := source.Open(ctx, path)
	if err != nil {
		return err
	}

	meta := src.Metadata()

	err = src.Close()
	if err != nil {
		a.logger.DebugContext(ctx, "close source", slog.Any("err", err))
	}

	return WriteInfo(a.stdout, Info{
		Path:            path,
		Metadata:        meta,
		DurationSeconds: meta.Duration().Seconds(),
		ASCIIWidth:      a.tfCfg.Width,
		PlaybackFPS:     a.pbCfg.FPS,
	}, a.output)
}

func (a *app) play(ctx context.Context, path string) error {
	tf, err := a.tfCfg.NewTransformer()
	if err != nil {
		return err
	}

	err = a.pbCfg.Validate()
	if err != nil {
		return err
	}

	var (
		geom  display.GeometryProvider = display.StaticGeometry(layout.DefaultGeometry)
		color bool
	)

	if f, ok := a.stdout.(*os.File); ok {
		tg := display.NewTerminalGeometry(f)
		geom = tg
		color = tg.IsTerminal()
	}

	driver := display.NewDriver(a.stdout,
		display.WithTitle(a.pbCfg.Title),
		display.WithColor(color),
	)

	opts := []playback.PlayerOption{playback.WithPlayerLogger(a.logger)}
	if a.pbCfg.TUI {
		opts = append(opts, playback.WithInteractive(tea.WithOutput(a.stdout)))
	}

	sess := playback.NewSession(
		playback.NewPlayer(driver, geom, a.pbCfg.FPS, opts...),
		tf,
		playback.WithLogger(a.logger),
		playback.WithStartDelay(a.pbCfg.StartDelay),
	)

	report, err := sess.Run(ctx, path)
	if err != nil {
		return err
	}

	if report.State == playback.StateInterrupted {
		if !report.Finished {
			// Nothing reached stdout, so say so where the logs go.
			fmt.Fprintln(a.stderr, display.StoppedNotice)
		}

		a.logger.InfoContext(ctx, "stopped by user",
			slog.Int("rendered", report.Rendered),
			slog.Int("total", report.Total),
		)
	}

	return nil
}
