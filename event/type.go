package event

// EventType identifies a notification emitted by an animation engine
type EventType int

const (
	// EventNone is the zero value and is never emitted
	EventNone EventType = iota

	// EventShuffleChange signals a newly rendered frame
	// Trigger: every delivered tick while a run is active
	// Payload: *ChangePayload
	EventShuffleChange

	// EventShuffleComplete signals the end of a run
	// Trigger: tick observing elapsed > duration, after the final text is restored
	// Payload: nil
	EventShuffleComplete
)

// Canonical event names, kept stable for hosts that subscribe by name
const (
	NameShuffleChange   = "shuffleTextChange"
	NameShuffleComplete = "shuffleTextComplete"
)

// String returns the registered name of the event type
func (t EventType) String() string {
	if name, ok := GetEventName(t); ok {
		return name
	}
	return "Unknown"
}

// Event is a single notification delivered to listeners
type Event struct {
	Type EventType
	// Source identifies the emitter, typically an engine instance id
	Source  string
	Payload any
}

// ChangePayload carries the frame rendered on a tick
type ChangePayload struct {
	Text string
}
