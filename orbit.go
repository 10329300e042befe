package orbit

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// Vec2 is a 2D vector used for screen positions and tab placement.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector in collection space. Y points up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// RotateY rotates v around the Y axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// LayoutKind selects how items are arranged.
type LayoutKind uint8

const (
	LayoutSphere LayoutKind = iota // Fibonacci sphere (default)
	LayoutRing                     // flat ring in the XZ plane
)

// String returns the lower-case name of the layout kind.
func (k LayoutKind) String() string {
	switch k {
	case LayoutRing:
		return "ring"
	case LayoutSphere:
		return "sphere"
	default:
		return fmt.Sprintf("LayoutKind(%d)", uint8(k))
	}
}

// ParseLayoutKind parses "ring" or "sphere" (case-insensitive).
func ParseLayoutKind(s string) (LayoutKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sphere", "":
		return LayoutSphere, nil
	case "ring":
		return LayoutRing, nil
	default:
		return LayoutSphere, fmt.Errorf("orbit: unknown layout kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k LayoutKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so the kind can be read
// from YAML documents and environment variables.
func (k *LayoutKind) UnmarshalText(text []byte) error {
	kind, err := ParseLayoutKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Priority is a scheduling hint for asset loads.
type Priority uint8

const (
	PriorityLow    Priority = iota // off-screen items
	PriorityMedium                 // visible items
	PriorityHigh                   // hovered, selected or gallery items
)

// String returns the lower-case name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("Priority(%d)", uint8(p))
	}
}

// Key identifies a keyboard command understood by the controller.
type Key uint8

const (
	KeyLeft   Key = iota // move the cursor to the previous item
	KeyRight             // move the cursor to the next item
	KeyUp                // previous category filter
	KeyDown              // next category filter
	KeyEscape            // clear hover, selection, search, filter and comparison
	KeySpace             // toggle selection of the cursor item
	KeyEnter             // toggle the cursor item in the comparison set
	KeyPause             // toggle ambient rotation
)

var keyNames = [...]string{
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyEscape: "escape",
	KeySpace:  "space",
	KeyEnter:  "enter",
	KeyPause:  "pause",
}

// String returns the lower-case name of the key.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey maps a key name ("left", "esc", "space", ...) to a Key.
func ParseKey(s string) (Key, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "arrowleft":
		return KeyLeft, true
	case "right", "arrowright":
		return KeyRight, true
	case "up", "arrowup":
		return KeyUp, true
	case "down", "arrowdown":
		return KeyDown, true
	case "escape", "esc":
		return KeyEscape, true
	case "space", "spacebar":
		return KeySpace, true
	case "enter", "return":
		return KeyEnter, true
	case "pause", "p":
		return KeyPause, true
	}
	return 0, false
}

// EventType identifies a kind of view event forwarded to an EventSink.
type EventType uint8

const (
	EventHoverEnter EventType = iota // pointer entered a card
	EventHoverLeave                  // pointer left a card or hover was cleared
	EventSelect                      // an item became selected
	EventDeselect                    // selection was cleared
	EventNavigate                    // an item was clicked and navigation requested
	EventFilter                      // the category filter changed
	EventSearch                      // the search query changed
	EventCompare                     // the comparison set changed
	EventPause                       // ambient rotation paused
	EventResume                      // ambient rotation resumed
)
