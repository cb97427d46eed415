package display

import "time"

// State is the mutable state of one playback run.
type State struct {
	// Last is the most recently written composed text (header and padded
	// frame), without control sequences.
	Last string
	// Index is the zero-based position of the frame being presented.
	Index int
	// Total is the number of frames in the run.
	Total int
	// Rendered counts successful [Driver.Render] calls.
	Rendered int
	// Delay is the pause held after each frame.
	Delay time.Duration
}

// NewState creates a [State] for total frames paced at fps frames per
// second. A non-positive fps yields no delay.
func NewState(total int, fps float64) *State {
	var delay time.Duration
	if fps > 0 {
		delay = time.Duration(float64(time.Second) / fps)
	}

	return &State{
		Total: total,
		Delay: delay,
	}
}

// First reports whether nothing has been rendered yet.
func (s *State) First() bool {
	return s.Rendered == 0
}
