package playback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/asciivid/display"
	"go.jacobcolvin.com/asciivid/glyph"
	"go.jacobcolvin.com/asciivid/layout"
)

// Renderer presents composed frames. [*display.Driver] implements it.
type Renderer interface {
	Render(st *display.State, f glyph.Frame, place layout.Result, status string) error
	Compose(f glyph.Frame, place layout.Result, status string) string
	Finish(interrupted bool) error
}

// Sleeper blocks for d or until ctx is done, returning ctx's error in the
// latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default [Sleeper].
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Player presents a [Sequence] at a fixed frame rate.
//
// Create instances with [NewPlayer].
type Player struct {
	renderer Renderer
	geometry display.GeometryProvider
	sleep    Sleeper
	logger   *slog.Logger
	teaOpts  []tea.ProgramOption
	fps      float64
	tui      bool
}

// PlayerOption configures a [Player].
type PlayerOption func(*Player)

// WithSleeper replaces the pacing function.
func WithSleeper(s Sleeper) PlayerOption {
	return func(p *Player) {
		p.sleep = s
	}
}

// WithPlayerLogger sets the logger used for per-frame debug output.
func WithPlayerLogger(l *slog.Logger) PlayerOption {
	return func(p *Player) {
		p.logger = l
	}
}

// WithInteractive makes [Player.Play] run a full-screen Bubble Tea program
// instead of writing frames directly. opts are passed to the program.
func WithInteractive(opts ...tea.ProgramOption) PlayerOption {
	return func(p *Player) {
		p.tui = true
		p.teaOpts = opts
	}
}

// NewPlayer creates a [Player] that renders through r, sizes frames with g,
// and paces at fps frames per second.
func NewPlayer(r Renderer, g display.GeometryProvider, fps float64, opts ...PlayerOption) *Player {
	p := &Player{
		renderer: r,
		geometry: g,
		sleep:    Sleep,
		logger:   slog.New(slog.DiscardHandler),
		fps:      fps,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// FPS returns the target frame rate.
func (p *Player) FPS() float64 {
	return p.fps
}

// Play presents every frame of seq in order.
//
// For each frame the terminal size is polled, the frame is laid out and
// rendered, and then the player sleeps for 1/fps. There is no drift
// correction. If ctx is cancelled, Play stops before the next frame and
// reports [StateInterrupted]; an error is only returned when output fails.
func (p *Player) Play(ctx context.Context, seq Sequence) (Report, error) {
	if p.tui {
		return p.playInteractive(ctx, seq)
	}

	st := display.NewState(len(seq), p.fps)
	report := Report{State: StatePlaying, Total: len(seq)}

	for i, f := range seq {
		if ctx.Err() != nil {
			report.State = StateInterrupted

			break
		}

		st.Index = i
		place := layout.Compute(f, p.geometry.Geometry())

		err := p.renderer.Render(st, f, place, Status(i, len(seq)))
		if err != nil {
			return report, err
		}

		report.Rendered = st.Rendered

		p.logger.DebugContext(ctx, "rendered frame",
			slog.Int("frame", i+1),
			slog.Int("left", place.Left),
			slog.Int("top", place.Top),
			slog.Bool("portrait", place.Portrait),
		)

		if p.sleep(ctx, st.Delay) != nil {
			report.State = StateInterrupted

			break
		}
	}

	if report.State == StatePlaying {
		report.State = StateCompleted
	}

	err := p.renderer.Finish(report.State == StateInterrupted)
	if err != nil {
		return report, err
	}

	report.Finished = true

	return report, nil
}

// Status returns the header status line for the zero-based frame i of
// total.
func Status(i, total int) string {
	return fmt.Sprintf("Frame: %d/%d", i+1, total)
}
