package suspension

// EventType identifies engine lifecycle events.
type EventType uint8

const (
	EventInitialized EventType = iota
	EventUpdated
	EventAdjusted
	EventReset
)

func (t EventType) String() string {
	switch t {
	case EventInitialized:
		return "initialized"
	case EventUpdated:
		return "updated"
	case EventAdjusted:
		return "adjusted"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event is delivered synchronously to an Observer after the state change
// it describes has completed.
type Event struct {
	Type    EventType
	SimTime float64 // engine sim-time in seconds
}

// Observer receives engine lifecycle events. The engine calls it
// synchronously from the owning goroutine; implementations must not call
// back into the engine. A nil observer disables delivery entirely.
type Observer interface {
	HandleSuspensionEvent(Event)
}
