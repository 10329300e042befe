package ecs

import (
	"testing"

	"github.com/phanxgames/orbit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []orbit.ViewEvent
	ViewEventType.Subscribe(world, func(w donburi.World, e orbit.ViewEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(orbit.ViewEvent{Type: orbit.EventHoverEnter, ItemID: "proj-3", Tick: 7})
	sink.EmitEvent(orbit.ViewEvent{Type: orbit.EventNavigate, ItemID: "proj-3", Path: "/project/project-3"})

	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	ViewEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != orbit.EventHoverEnter || e.ItemID != "proj-3" || e.Tick != 7 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Path != "/project/project-3" {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_FromController(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	items := []orbit.Item{
		{ID: "a", Categories: []string{"interior"}, Images: []string{"a.jpg"}},
		{ID: "b", Categories: []string{"exterior"}, Images: []string{"b.jpg"}},
	}
	state := orbit.NewViewState(items)
	c := orbit.NewController(state, nil, nil)
	c.OnEvent = sink.EmitEvent

	var types []orbit.EventType
	ViewEventType.Subscribe(world, func(w donburi.World, e orbit.ViewEvent) {
		types = append(types, e.Type)
	})

	c.HoverEnter("a")
	c.SetFilter("exterior")
	events.ProcessAllEvents(world)

	want := []orbit.EventType{orbit.EventHoverEnter, orbit.EventFilter, orbit.EventHoverLeave}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}
