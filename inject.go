package orbit

type injectKind uint8

const (
	injectMove injectKind = iota
	injectPress
	injectRelease
	injectKey
)

// syntheticEvent is one injected input event. Pointer events carry screen
// coordinates, matching what a script author sees in screenshots.
type syntheticEvent struct {
	kind injectKind
	x, y float64
	key  Key
}

// InjectMove queues a pointer move to (x, y). The button keeps its current
// state, so a move between InjectPress and InjectRelease drags.
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: injectMove, x: x, y: y})
}

// InjectPress queues a pointer press at (x, y). The event is consumed on the
// next Update.
func (v *Viewer) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: injectPress, x: x, y: y})
}

// InjectRelease queues a pointer release at (x, y).
func (v *Viewer) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: injectRelease, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (v *Viewer) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves and a release at (toX, toY). Minimum frames is 2.
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(toX, toY)
}

// InjectKey queues a key press.
func (v *Viewer) InjectKey(k Key) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: injectKey, key: k})
}

// Injecting reports whether injected events are waiting.
func (v *Viewer) Injecting() bool { return len(v.injectQueue) > 0 }

// processInjectedInput pops one event from the inject queue and applies it.
// It returns true if an event was consumed; polled pointer input is skipped
// for that tick.
func (v *Viewer) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	switch evt.kind {
	case injectMove:
		v.processPointer(evt.x, evt.y, v.pointer.down)
	case injectPress:
		v.processPointer(evt.x, evt.y, true)
	case injectRelease:
		v.processPointer(evt.x, evt.y, false)
	case injectKey:
		v.processKey(evt.key)
		return false
	}
	return true
}
