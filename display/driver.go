package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"go.jacobcolvin.com/asciivid/glyph"
	"go.jacobcolvin.com/asciivid/layout"
)

// Terminal control sequences emitted by the [Driver].
const (
	// ClearHome erases the screen and moves the cursor to the origin.
	ClearHome = "\x1b[2J\x1b[H"
	// Home moves the cursor to the origin.
	Home = "\x1b[H"
)

const (
	// DefaultTitle is the header title used when none is configured.
	DefaultTitle = "ASCII Video Player"

	ruleWidth = 50
)

// ErrWrite indicates that output could not be written.
var ErrWrite = errors.New("write output")

// Driver renders frames to a single writer, normally the terminal.
//
// Create instances with [NewDriver].
type Driver struct {
	w       io.Writer
	title   string
	rule    string
	titleSt lipgloss.Style
	infoSt  lipgloss.Style
	stopSt  lipgloss.Style
	doneSt  lipgloss.Style
	color   bool
}

// Option configures a [Driver].
type Option func(*Driver)

// WithTitle sets the header title line.
func WithTitle(title string) Option {
	return func(d *Driver) {
		d.title = title
	}
}

// WithColor enables ANSI styling of the header and notices.
func WithColor(enabled bool) Option {
	return func(d *Driver) {
		d.color = enabled
	}
}

// NewDriver creates a [Driver] writing to w.
func NewDriver(w io.Writer, opts ...Option) *Driver {
	d := &Driver{
		w:       w,
		title:   DefaultTitle,
		rule:    strings.Repeat("-", ruleWidth),
		titleSt: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		infoSt:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		stopSt:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		doneSt:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) style(st lipgloss.Style, s string) string {
	if !d.color {
		return s
	}

	return st.Render(s)
}

// Header returns the [layout.HeaderLines] header lines for the given status,
// each terminated by a newline.
func (d *Driver) Header(status string) string {
	var sb strings.Builder

	sb.WriteString(d.style(d.titleSt, d.title))
	sb.WriteByte('\n')
	sb.WriteString(d.style(d.infoSt, status))
	sb.WriteByte('\n')
	sb.WriteString(d.rule)
	sb.WriteByte('\n')

	return sb.String()
}

// Compose returns the full text for one frame: the header followed by f
// padded according to place.
func (d *Driver) Compose(f glyph.Frame, place layout.Result, status string) string {
	return d.Header(status) + place.Apply(f)
}

// Render writes one frame and records it in st.
//
// Before the first frame of st the screen is cleared; every frame then homes
// the cursor and overwrites what is on screen. The whole frame is written
// with a single call so partial frames are not visible.
func (d *Driver) Render(st *State, f glyph.Frame, place layout.Result, status string) error {
	full := d.Compose(f, place, status)

	var sb strings.Builder

	sb.Grow(len(ClearHome) + len(Home) + len(full))

	if st.First() {
		sb.WriteString(ClearHome)
	}

	sb.WriteString(Home)
	sb.WriteString(full)

	_, err := io.WriteString(d.w, sb.String())
	if err != nil {
		return fmt.Errorf("%w: frame %d: %w", ErrWrite, st.Index+1, err)
	}

	st.Last = full
	st.Rendered++

	return nil
}

// Notices written by [Driver.Finish].
const (
	StoppedNotice   = "Playback stopped"
	CompletedNotice = "Playback completed"
)

// Finish writes the end-of-playback notice: [StoppedNotice] for an
// interrupted run, [CompletedNotice] otherwise.
func (d *Driver) Finish(interrupted bool) error {
	var sb strings.Builder

	sb.WriteByte('\n')

	if interrupted {
		sb.WriteString(d.style(d.stopSt, StoppedNotice))
	} else {
		sb.WriteString(d.style(d.doneSt, CompletedNotice))
	}

	sb.WriteByte('\n')

	_, err := io.WriteString(d.w, sb.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}
