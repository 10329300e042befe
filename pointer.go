package orbit

import "math"

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks the single pointer between ticks.
type pointerState struct {
	seen     bool
	x, y     float64
	inside   bool
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	pressID  string // card under the pointer at press time
	dragging bool
}

// pointerSample is one polled pointer position.
type pointerSample struct {
	x, y    float64
	pressed bool
}

// hitTest returns the id of the frontmost card containing (x, y), or "".
// Frames are ordered back-to-front, so the walk runs backwards.
func (v *Viewer) hitTest(x, y float64) string {
	for i := len(v.frames) - 1; i >= 0; i-- {
		if v.frames[i].Rect.Contains(x, y) {
			return v.frames[i].Item.ID
		}
	}
	return ""
}

// processPointer feeds one pointer sample through the hover, click and drag
// state machine. Hit tests run against the frames of the previous tick,
// which is what the user is looking at.
func (v *Viewer) processPointer(x, y float64, pressed bool) {
	p := &v.pointer
	moved := !p.seen || x != p.x || y != p.y
	p.seen = true
	p.x, p.y = x, y

	inside := v.camera.Viewport.Contains(x, y)
	if inside != p.inside {
		p.inside = inside
		if inside {
			v.controller.ContainerEnter()
		} else {
			v.controller.ContainerLeave()
			v.controller.HoverLeave("")
		}
	}

	target := ""
	if inside {
		target = v.hitTest(x, y)
	}

	switch {
	case pressed && !p.down:
		p.down = true
		p.startX, p.startY = x, y
		p.lastX = x
		p.pressID = target
		p.dragging = false

	case pressed && p.down:
		if !p.dragging {
			dx, dy := x-p.startX, y-p.startY
			if math.Hypot(dx, dy) > v.dragDeadZone {
				p.dragging = true
			}
		}
		if p.dragging {
			v.camera.Rotate((x - p.lastX) * v.cfg.DragSensitivity)
			p.lastX = x
		}

	case !pressed && p.down:
		if !p.dragging && target != "" && target == p.pressID {
			v.controller.Click(target)
		}
		p.down = false
		p.dragging = false
		p.pressID = ""
	}

	if p.dragging || !moved || !inside {
		return
	}
	if target == "" {
		v.controller.HoverLeave("")
	} else if target != v.state.Hovered() {
		v.controller.HoverEnter(target)
	}
}

// Dragging reports whether the pointer is rotating the collection.
func (v *Viewer) Dragging() bool { return v.pointer.dragging }

// SetDragDeadZone sets the movement in pixels a press must exceed before it
// becomes a drag instead of a click.
func (v *Viewer) SetDragDeadZone(pixels float64) {
	v.dragDeadZone = pixels
}

// FeedPointer records the polled pointer position for the next Update.
// Only the latest sample per tick is used.
func (v *Viewer) FeedPointer(x, y float64, pressed bool) {
	v.realPointer = pointerSample{x: x, y: y, pressed: pressed}
	v.hasRealPointer = true
}

// FeedKey records a key press for the next Update.
func (v *Viewer) FeedKey(k Key) {
	v.realKeys = append(v.realKeys, k)
}

// processInput applies one injected event, or the polled input when no
// injected event is queued, then clears the polled input.
func (v *Viewer) processInput() {
	injected := v.processInjectedInput()
	if !injected && v.hasRealPointer {
		s := v.realPointer
		v.processPointer(s.x, s.y, s.pressed)
	}
	for _, k := range v.realKeys {
		v.processKey(k)
	}
	v.realKeys = v.realKeys[:0]
	v.hasRealPointer = false
}

// processKey routes a key to the open gallery or to the controller.
func (v *Viewer) processKey(k Key) {
	if v.gallery.IsOpen() {
		switch k {
		case KeyLeft:
			v.gallery.Prev()
			return
		case KeyRight:
			v.gallery.Next()
			return
		case KeyEscape:
			v.gallery.Close()
			return
		}
	}
	v.controller.HandleKey(k)
}
