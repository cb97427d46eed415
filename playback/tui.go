package playback

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/asciivid/layout"
)

// tickMsg signals that it is time to advance to the next frame.
type tickMsg struct{}

// model is the Bubble Tea model behind [WithInteractive].
type model struct {
	seq         Sequence
	renderer    Renderer
	geometry    layout.Geometry
	delay       time.Duration
	index       int
	done        bool
	interrupted bool
}

func newModel(seq Sequence, r Renderer, g layout.Geometry, fps float64) *model {
	return &model{
		seq:      seq,
		renderer: r,
		geometry: g,
		delay:    time.Duration(float64(time.Second) / fps),
	}
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Init returns the first tick command to start playback.
func (m *model) Init() tea.Cmd {
	return m.tick()
}

// Update handles tick, resize, and quit messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.interrupted = true

			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.geometry = layout.Geometry{Cols: msg.Width, Rows: msg.Height}

	case tickMsg:
		if m.done {
			return m, nil
		}

		if m.index+1 >= len(m.seq) {
			m.done = true

			return m, tea.Quit
		}

		m.index++

		return m, m.tick()
	}

	return m, nil
}

// screen returns the composed text for the current frame.
func (m *model) screen() string {
	if len(m.seq) == 0 {
		return ""
	}

	f := m.seq[m.index]

	return m.renderer.Compose(f, layout.Compute(f, m.geometry), Status(m.index, len(m.seq)))
}

// View renders the current frame with its header.
func (m *model) View() tea.View {
	v := tea.NewView(m.screen())
	v.AltScreen = true

	return v
}

func (m *model) report() Report {
	r := Report{State: StateCompleted, Total: len(m.seq), Rendered: m.index + 1}
	if m.interrupted || !m.done {
		r.State = StateInterrupted
	}

	return r
}

func (p *Player) playInteractive(ctx context.Context, seq Sequence) (Report, error) {
	m := newModel(seq, p.renderer, p.geometry.Geometry(), p.fps)

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.teaOpts...)

	_, err := tea.NewProgram(m, opts...).Run()
	if err != nil && ctx.Err() == nil && !errors.Is(err, tea.ErrInterrupted) {
		return m.report(), err
	}

	report := m.report()

	err = p.renderer.Finish(report.State == StateInterrupted)
	if err != nil {
		return report, err
	}

	report.Finished = true

	return report, nil
}
