package orbit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 float64 fields simultaneously. Create one via
// TweenValue or TweenVec3 and call Update(dt) each frame; the group writes
// the current values into the target fields.
//
// A non-positive duration snaps the fields to their targets immediately and
// returns a group that is already Done.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. Calling Update on a finished group is a no-op.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenValue animates *field to the target value over duration seconds.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	if duration <= 0 {
		*field = to
		g.Done = true
		return g
	}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenVec3 animates all three components of *v to the target vector over
// duration seconds.
func TweenVec3(v *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	if duration <= 0 {
		*v = to
		g.Done = true
		return g
	}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(v.Z), float32(to.Z), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	g.fields[2] = &v.Z
	return g
}
