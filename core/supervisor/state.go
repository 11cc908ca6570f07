package supervisor

// State is the lifecycle state of the supervised server.
type State int32

const (
	// Starting binds the listener and builds a fresh serving loop.
	Starting State = iota
	// Running accepts and dispatches requests.
	Running
	// RestartingAfterFault waits out the backoff after a client disconnect fault.
	RestartingAfterFault
	// Stopped is terminal: shutdown was requested or the loop exited on its own.
	Stopped
	// FatallyFaulted is terminal: a fault that is not a disconnect, or a bind failure.
	FatallyFaulted
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case RestartingAfterFault:
		return "restarting_after_fault"
	case Stopped:
		return "stopped"
	case FatallyFaulted:
		return "fatally_faulted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Stopped || s == FatallyFaulted
}
