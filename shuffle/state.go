package shuffle

// State is the engine lifecycle state
type State int

const (
	// StateStopped holds no tick subscription
	StateStopped State = iota
	// StateRunning holds exactly one tick subscription
	StateRunning
)

// String returns the human-readable name of the state
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}
