package orbit

import "math"

// GoldenAngle is π(3 − √5), the angular step of the Fibonacci spiral.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// LayoutSlot is the position and orientation assigned to one item for one
// frame. Slots are derived from (index, total, radius) and never stored.
type LayoutSlot struct {
	Index    int
	Position Vec3
	// Yaw is the rotation around Y that turns a card to face outward from
	// the centre of the collection.
	Yaw float64
	// Valid is false when the slot was requested for an index outside
	// [0, total). Such slots sit at the origin.
	Valid bool
}

// RingPoint returns the position of index on a ring of the given radius in
// the XZ plane. Index i sits at angle i*(2π/total). ok is false when index is
// outside [0, total); the origin is returned in that case.
func RingPoint(index, total int, radius float64) (p Vec3, ok bool) {
	if index < 0 || index >= total {
		return Vec3{}, false
	}
	angle := float64(index) * (2 * math.Pi / float64(total))
	sin, cos := math.Sincos(angle)
	return Vec3{X: cos * radius, Z: sin * radius}, true
}

// SpherePoint returns the Fibonacci-sphere position of index among total
// points on a sphere of the given radius. Index 0 is the top pole and index
// total-1 the bottom pole; a single point sits on the equator at angle zero.
// ok is false when index is outside [0, total).
func SpherePoint(index, total int, radius float64) (p Vec3, ok bool) {
	if index < 0 || index >= total {
		return Vec3{}, false
	}
	y := 0.0
	if total > 1 {
		y = 1 - (float64(index)/float64(total-1))*2
	}
	r := math.Sqrt(math.Max(0, 1-y*y))
	sin, cos := math.Sincos(float64(index) * GoldenAngle)
	return Vec3{
		X: cos * r * radius,
		Y: y * radius,
		Z: sin * r * radius,
	}, true
}

// TabPoint places category tab index of total on a 2D circle of the given
// radius, starting at angle zero (to the right) and proceeding clockwise in
// screen space. Out-of-range indices return the zero vector.
func TabPoint(index, total int, radius float64) Vec2 {
	p, ok := RingPoint(index, total, radius)
	if !ok {
		return Vec2{}
	}
	return Vec2{X: p.X, Y: p.Z}
}

// Slot computes the layout slot for one index. It never panics; invalid
// indices yield an origin slot with Valid=false.
func Slot(kind LayoutKind, index, total int, radius float64) LayoutSlot {
	var (
		p  Vec3
		ok bool
	)
	switch kind {
	case LayoutRing:
		p, ok = RingPoint(index, total, radius)
	default:
		p, ok = SpherePoint(index, total, radius)
	}
	s := LayoutSlot{Index: index, Position: p, Valid: ok}
	if ok {
		s.Yaw = math.Atan2(p.X, p.Z)
	}
	return s
}

// Layout returns total slots for the given kind and radius. total <= 0
// yields an empty slice.
func Layout(kind LayoutKind, total int, radius float64) []LayoutSlot {
	return AppendLayout(nil, kind, total, radius)
}

// AppendLayout appends total slots to dst and returns the extended slice.
// Reusing dst across frames avoids per-frame allocation.
func AppendLayout(dst []LayoutSlot, kind LayoutKind, total int, radius float64) []LayoutSlot {
	for i := 0; i < total; i++ {
		dst = append(dst, Slot(kind, i, total, radius))
	}
	return dst
}
