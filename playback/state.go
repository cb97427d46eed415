package playback

// State is a stage of a [Session].
type State int

// Session states.
const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StateCompleted
	StateInterrupted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateCompleted:
		return "completed"
	case StateInterrupted:
		return "interrupted"
	}

	return "unknown"
}

// Report summarizes a finished run.
type Report struct {
	State    State
	Rendered int
	Total    int
	// Finished is set once the renderer has written its end-of-playback
	// notice. It stays false when the run ends before playback starts.
	Finished bool
}
