package physics

import "math"

// Shape is a collider attached to a body. Shapes are expressed relative to the
// body position and never rotate: bodies carry yaw, but colliders stay axis
// aligned.
type Shape interface {
	// AABB returns the bounding box of the shape centered at pos.
	AABB(pos Vec3) AABB
	// Volume is used as the inertial mass of dynamic bodies with no mass of their own.
	Volume() float64

	core(pos Vec3) core
}

// Ball is a sphere.
type Ball struct {
	Radius float64
}

func (b Ball) AABB(pos Vec3) AABB {
	r := Vec3{b.Radius, b.Radius, b.Radius}
	return AABB{Min: pos.Sub(r), Max: pos.Add(r)}
}

func (b Ball) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * b.Radius * b.Radius * b.Radius
}

func (b Ball) core(pos Vec3) core {
	return core{min: pos, max: pos, radius: b.Radius}
}

// CapsuleZ is a capsule whose axis is the Z axis. HalfHeight is the half
// length of the inner segment, excluding the caps.
type CapsuleZ struct {
	HalfHeight float64
	Radius     float64
}

func (c CapsuleZ) AABB(pos Vec3) AABB {
	e := Vec3{c.Radius, c.Radius, c.HalfHeight + c.Radius}
	return AABB{Min: pos.Sub(e), Max: pos.Add(e)}
}

func (c CapsuleZ) Volume() float64 {
	return math.Pi*c.Radius*c.Radius*2*c.HalfHeight + Ball{Radius: c.Radius}.Volume()
}

func (c CapsuleZ) core(pos Vec3) core {
	h := Vec3{0, 0, c.HalfHeight}
	return core{min: pos.Sub(h), max: pos.Add(h), radius: c.Radius}
}

// Cuboid is an axis aligned box.
type Cuboid struct {
	HalfExtents Vec3
}

func (c Cuboid) AABB(pos Vec3) AABB {
	return AABB{Min: pos.Sub(c.HalfExtents), Max: pos.Add(c.HalfExtents)}
}

func (c Cuboid) Volume() float64 {
	return 8 * c.HalfExtents.X * c.HalfExtents.Y * c.HalfExtents.Z
}

func (c Cuboid) core(pos Vec3) core {
	return core{min: pos.Sub(c.HalfExtents), max: pos.Add(c.HalfExtents), box: true}
}

// AABB is an axis aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Overlaps reports whether the boxes intersect with positive volume. Boxes
// that only share a face do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	m := Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// core is the shape reduced to either a vertical segment (ball, capsule) or a
// box, plus a rounding radius. Balls are segments of zero length.
type core struct {
	min, max Vec3
	radius   float64
	box      bool
}

// contact is the result of the narrow phase between two cores.
type contact struct {
	// normal points from b towards a.
	normal Vec3
	// depth is positive when the shapes interpenetrate.
	depth float64
}

func collide(a, b core) contact {
	switch {
	case a.box && b.box:
		return boxBox(a, b)
	case b.box:
		return segmentBox(a, b)
	case a.box:
		c := segmentBox(b, a)
		c.normal = c.normal.Scale(-1)
		return c
	default:
		return segmentSegment(a, b)
	}
}

// closestZ returns the heights on two vertical intervals that are closest to
// each other.
func closestZ(a0, a1, b0, b1 float64) (float64, float64) {
	lo := math.Max(a0, b0)
	hi := math.Min(a1, b1)
	if lo <= hi {
		mid := (lo + hi) / 2
		return mid, mid
	}
	if a1 < b0 {
		return a1, b0
	}
	return a0, b1
}

func segmentSegment(a, b core) contact {
	za, zb := closestZ(a.min.Z, a.max.Z, b.min.Z, b.max.Z)
	pa := Vec3{a.min.X, a.min.Y, za}
	pb := Vec3{b.min.X, b.min.Y, zb}
	d := pa.Sub(pb)
	dist := d.Len()
	n := d.Normalize()
	if dist == 0 {
		n = Vec3{0, 0, 1}
	}
	return contact{normal: n, depth: a.radius + b.radius - dist}
}

func segmentBox(s, b core) contact {
	// Closest point on the segment to the box, then closest point on the box to it.
	z, _ := closestZ(s.min.Z, s.max.Z, b.min.Z, b.max.Z)
	p := Vec3{s.min.X, s.min.Y, z}
	q := Vec3{
		clamp(p.X, b.min.X, b.max.X),
		clamp(p.Y, b.min.Y, b.max.Y),
		clamp(p.Z, b.min.Z, b.max.Z),
	}
	d := p.Sub(q)
	dist := d.Len()
	if dist > 0 {
		return contact{normal: d.Scale(1 / dist), depth: s.radius - dist}
	}

	// The segment point is inside the box: push out through the nearest face.
	n, pen := insideBox(p, b)
	return contact{normal: n, depth: s.radius + pen}
}

func insideBox(p Vec3, b core) (Vec3, float64) {
	faces := []struct {
		n Vec3
		d float64
	}{
		{Vec3{0, 0, 1}, b.max.Z - p.Z},
		{Vec3{0, 0, -1}, p.Z - b.min.Z},
		{Vec3{1, 0, 0}, b.max.X - p.X},
		{Vec3{-1, 0, 0}, p.X - b.min.X},
		{Vec3{0, 1, 0}, b.max.Y - p.Y},
		{Vec3{0, -1, 0}, p.Y - b.min.Y},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.d < best.d {
			best = f
		}
	}
	return best.n, best.d
}

func boxBox(a, b core) contact {
	overlap := Vec3{
		math.Min(a.max.X, b.max.X) - math.Max(a.min.X, b.min.X),
		math.Min(a.max.Y, b.max.Y) - math.Max(a.min.Y, b.min.Y),
		math.Min(a.max.Z, b.max.Z) - math.Max(a.min.Z, b.min.Z),
	}
	ca := a.min.Add(a.max).Scale(0.5)
	cb := b.min.Add(b.max).Scale(0.5)

	sign := func(v float64) float64 {
		if v < 0 {
			return -1
		}
		return 1
	}

	c := contact{normal: Vec3{0, 0, sign(ca.Z - cb.Z)}, depth: overlap.Z}
	if overlap.X < c.depth {
		c = contact{normal: Vec3{sign(ca.X - cb.X), 0, 0}, depth: overlap.X}
	}
	if overlap.Y < c.depth {
		c = contact{normal: Vec3{0, sign(ca.Y - cb.Y), 0}, depth: overlap.Y}
	}
	return c
}
