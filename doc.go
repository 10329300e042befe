// Package orbit is the core of a 3D portfolio carousel for [Ebitengine].
//
// Orbit lays a collection of projects out on a ring or a Fibonacci sphere,
// keeps the filter and selection state, loads cover images in the
// background and turns pointer and keyboard input into state changes. Each
// tick it emits an ordered list of card frames that a render adapter draws.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	v, err := orbit.NewViewer(items, orbit.DefaultConfig(), orbit.HTTPFetcher{})
//	if err != nil {
//		return err
//	}
//	defer v.Close()
//	return orbit.Run(v, orbit.RunConfig{Title: "Portfolio"})
//
// For full control, implement [ebiten.Game] yourself: feed input with
// [Viewer.FeedPointer] and [Viewer.FeedKey], call [Viewer.Update] once per
// tick and draw [Viewer.Frames] back-to-front.
//
// # Threading
//
// A [Viewer] belongs to the game thread. Image fetches run on background
// goroutines and hand results back through a queue that [Viewer.Update]
// drains, so no state is ever written concurrently. After [Viewer.Close]
// late results are dropped.
//
// # Layout
//
// [RingPoint] and [SpherePoint] are pure functions of (index, total,
// radius). The sphere uses the golden angle π(3 − √5) so N points spread
// evenly from the top pole to the bottom pole.
//
// The catalog subpackage loads collections from YAML or JSON files and
// watches them for edits.
//
// Feedback tones are optional: pass [WithTonePlayer] with an
// [AudioTonePlayer] to hear hover and click sounds.
//
// Tweens use [gween]; the ECS bridge in orbit/ecs publishes view events to a
// [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package orbit
