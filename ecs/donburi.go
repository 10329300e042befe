package ecs

import (
	"github.com/phanxgames/orbit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewEventType is the Donburi event type for orbit view events. Systems
// subscribe with ViewEventType.Subscribe(world, fn) and receive the events
// queued since the last events.ProcessAllEvents(world), in emission order.
// Hover, select and navigate events carry the item id; filter and search
// events carry the new category or query.
var ViewEventType = events.NewEventType[orbit.ViewEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. View events
// are queued on ViewEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) orbit.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event orbit.ViewEvent) {
	ViewEventType.Publish(s.world, event)
}
