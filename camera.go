package orbit

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Detail is the level of detail a card is drawn at.
type Detail uint8

const (
	DetailLow Detail = iota
	DetailMedium
	DetailHigh
)

// String returns the lower-case name of the detail level.
func (d Detail) String() string {
	switch d {
	case DetailHigh:
		return "high"
	case DetailMedium:
		return "medium"
	default:
		return "low"
	}
}

// Priority returns the asset load priority for a visible card drawn at this
// detail level. Hovered and selected cards are raised to PriorityHigh by the
// viewer.
func (d Detail) Priority() Priority {
	if d == DetailLow {
		return PriorityLow
	}
	return PriorityMedium
}

// cameraNear is the minimum camera-space depth a point must have to project.
const cameraNear = 1.0

// Camera is a perspective camera orbiting the collection centre. It sits at
// Distance along +Z from Target, looking towards -Z, and the whole collection
// is turned by Yaw before projection.
type Camera struct {
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect
	// Distance from the camera to Target.
	Distance float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Yaw is the collection rotation around Y in radians. Ambient rotation
	// and drag both write it.
	Yaw float64
	// Target is the world-space point centred on screen.
	Target Vec3

	home     float64
	focus    *TweenGroup
	zoom     *TweenGroup
	focusing bool
}

func newCamera(viewport Rect, distance, fov float64) *Camera {
	return &Camera{
		Viewport: viewport,
		Distance: distance,
		FOV:      fov,
		home:     distance,
	}
}

// focal returns the projection scale at unit depth.
func (c *Camera) focal() float64 {
	return (c.Viewport.Height / 2) / math.Tan(c.FOV/2)
}

// Depth returns the camera-space depth of world point p. Larger values are
// farther from the camera.
func (c *Camera) Depth(p Vec3) float64 {
	rel := p.Sub(c.Target).RotateY(c.Yaw)
	return c.Distance - rel.Z
}

// Project maps world point p to screen space. scale is the size in pixels of
// one world unit at p's depth. ok is false when p is behind the near plane.
func (c *Camera) Project(p Vec3) (screen Vec2, scale, depth float64, ok bool) {
	rel := p.Sub(c.Target).RotateY(c.Yaw)
	depth = c.Distance - rel.Z
	if depth <= cameraNear {
		return Vec2{}, 0, depth, false
	}
	scale = c.focal() / depth
	center := c.Viewport.Center()
	screen = Vec2{
		X: center.X + rel.X*scale,
		Y: center.Y - rel.Y*scale,
	}
	return screen, scale, depth, true
}

// Visible reports whether the screen-space rectangle r overlaps the viewport.
func (c *Camera) Visible(r Rect) bool {
	return r.Intersects(c.Viewport)
}

// Rotate adds delta radians to Yaw, keeping it in [0, 2π).
func (c *Camera) Rotate(delta float64) {
	c.Yaw = math.Mod(c.Yaw+delta, 2*math.Pi)
	if c.Yaw < 0 {
		c.Yaw += 2 * math.Pi
	}
}

// FocusOn animates Target to p and Distance to distance over duration
// seconds.
func (c *Camera) FocusOn(p Vec3, distance float64, duration float32, fn ease.TweenFunc) {
	c.focus = TweenVec3(&c.Target, p, duration, fn)
	c.zoom = TweenValue(&c.Distance, distance, duration, fn)
	c.focusing = true
}

// Reset animates the camera back to the collection centre and its original
// distance.
func (c *Camera) Reset(duration float32, fn ease.TweenFunc) {
	c.focus = TweenVec3(&c.Target, Vec3{}, duration, fn)
	c.zoom = TweenValue(&c.Distance, c.home, duration, fn)
	c.focusing = false
}

// Focused reports whether the camera is focused on (or moving to) a card.
func (c *Camera) Focused() bool { return c.focusing }

// Animating reports whether a focus or reset tween is in progress.
func (c *Camera) Animating() bool {
	return (c.focus != nil && !c.focus.Done) || (c.zoom != nil && !c.zoom.Done)
}

// Detail returns the level of detail for a card at depth given the high and
// medium depth limits.
func (c *Camera) Detail(depth, high, medium float64) Detail {
	switch {
	case depth < high:
		return DetailHigh
	case depth < medium:
		return DetailMedium
	default:
		return DetailLow
	}
}

// update advances the focus tweens.
func (c *Camera) update(dt float32) {
	if c.focus != nil {
		c.focus.Update(dt)
		if c.focus.Done {
			c.focus = nil
		}
	}
	if c.zoom != nil {
		c.zoom.Update(dt)
		if c.zoom.Done {
			c.zoom = nil
		}
	}
}

// defaultEase is the easing used by hover and focus tweens.
var defaultEase ease.TweenFunc = ease.OutCubic
