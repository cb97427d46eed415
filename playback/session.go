package playback

import (
	"context"
	"log/slog"
	"time"

	"go.jacobcolvin.com/asciivid/source"
)

// Opener opens a video source by path.
type Opener func(ctx context.Context, path string) (source.Source, error)

// Session runs one video through loading and playback.
//
// Create instances with [NewSession].
type Session struct {
	open       Opener
	conv       Converter
	player     *Player
	logger     *slog.Logger
	startDelay time.Duration
	state      State
}

// SessionOption configures a [Session].
type SessionOption func(*Session)

// WithLogger sets the logger for loading progress and the playback summary.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithStartDelay sets the pause between loading and the first frame.
func WithStartDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		s.startDelay = d
	}
}

// WithOpener replaces [source.Open] as the way paths are opened.
func WithOpener(o Opener) SessionOption {
	return func(s *Session) {
		s.open = o
	}
}

// NewSession creates a [Session] in [StateIdle].
func NewSession(p *Player, conv Converter, opts ...SessionOption) *Session {
	s := &Session{
		open:   source.Open,
		conv:   conv,
		player: p,
		logger: slog.New(slog.DiscardHandler),
		state:  StateIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run loads path and plays it.
//
// Errors opening or loading the source are returned with the session left
// in [StateLoading]; nothing is written to the terminal in that case.
// Cancelling ctx at any point ends the session in [StateInterrupted] with a
// nil error.
func (s *Session) Run(ctx context.Context, path string) (Report, error) {
	s.state = StateLoading

	s.logger.InfoContext(ctx, "loading video", slog.String("path", path))

	src, err := s.open(ctx, path)
	if err != nil {
		return s.interrupted(ctx, Report{State: StateLoading}, err)
	}

	defer func() {
		cerr := src.Close()
		if cerr != nil {
			s.logger.DebugContext(ctx, "close source", slog.Any("err", cerr))
		}
	}()

	meta := src.Metadata()
	s.logger.InfoContext(ctx, "video opened",
		slog.String("codec", meta.Codec),
		slog.Int("width", meta.Width),
		slog.Int("height", meta.Height),
		slog.Float64("fps", meta.FPS),
		slog.Int("frames", meta.FrameCount),
	)

	seq, err := Load(ctx, src, s.conv, s.logger)
	if err != nil {
		return s.interrupted(ctx, Report{State: StateLoading}, err)
	}

	fps := s.player.FPS()
	s.logger.InfoContext(ctx, "starting playback",
		slog.Int("frames", len(seq)),
		slog.Float64("fps", fps),
		slog.Int("width", seq[0].Width()),
		slog.Duration("duration", time.Duration(float64(len(seq))/fps*float64(time.Second))),
	)

	err = s.player.sleep(ctx, s.startDelay)
	if err != nil {
		return s.interrupted(ctx, Report{State: StateLoading, Total: len(seq)}, err)
	}

	s.state = StatePlaying

	report, err := s.player.Play(ctx, seq)
	if err != nil {
		return report, err
	}

	s.state = report.State

	s.logger.InfoContext(ctx, "playback finished",
		slog.String("state", report.State.String()),
		slog.Int("rendered", report.Rendered),
		slog.Int("total", report.Total),
	)

	return report, nil
}

// interrupted reports r as [StateInterrupted] if ctx has been cancelled,
// and otherwise passes err through.
func (s *Session) interrupted(ctx context.Context, r Report, err error) (Report, error) {
	if ctx.Err() == nil {
		return r, err
	}

	s.state = StateInterrupted
	r.State = StateInterrupted

	s.logger.InfoContext(ctx, "interrupted", slog.String("during", StateLoading.String()))

	return r, nil
}
