package orbit

import "fmt"

var eventNames = [...]string{
	EventHoverEnter: "hover_enter",
	EventHoverLeave: "hover_leave",
	EventSelect:     "select",
	EventDeselect:   "deselect",
	EventNavigate:   "navigate",
	EventFilter:     "filter",
	EventSearch:     "search",
	EventCompare:    "compare",
	EventPause:      "pause",
	EventResume:     "resume",
}

// String returns the snake-case name of the event type.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// ViewEvent describes one state change made by the controller.
type ViewEvent struct {
	Type EventType
	// ItemID is set for hover, select, navigate and compare events.
	ItemID string
	// Category is set for filter events.
	Category string
	// Query is set for search events.
	Query string
	// Path is set for navigate events.
	Path string
	// Tick is the viewer frame counter when the event was emitted.
	Tick uint64
}

// EventSink receives view events on the game thread.
type EventSink interface {
	EmitEvent(ViewEvent)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(ViewEvent)

// EmitEvent calls f(evt).
func (f EventSinkFunc) EmitEvent(evt ViewEvent) { f(evt) }
