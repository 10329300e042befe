// Package ecs provides ECS adapters for orbit's view events.
//
// The primary adapter is [NewDonburiSink], which publishes the viewer's hover,
// selection, navigation, filter and compare events into a [Donburi] world as
// typed events. Subscribe to [ViewEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	v, err := orbit.NewViewer(items, cfg, fetcher, orbit.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
