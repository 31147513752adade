package types

import "github.com/chewxy/math32"

// Bounds is an axis-aligned bounding box. The zero value is the single point
// at the origin; EmptyBounds returns the degenerate box (Min > Max on every
// axis) that acts as the identity for Union.
type Bounds struct {
	Min, Max Vec3
}

func EmptyBounds() Bounds {
	inf := float32(math32.Inf(1))
	return Bounds{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

func (b Bounds) Union(p Vec3) Bounds {
	return Bounds{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

func (b Bounds) UnionBounds(other Bounds) Bounds {
	return Bounds{Min: MinVec3(b.Min, other.Min), Max: MaxVec3(b.Max, other.Max)}
}

func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Planes returns the six half-space planes bounding the box, each with its
// normal pointing outward: -X,+X,-Y,+Y,-Z,+Z.
func (b Bounds) Planes() [6]Plane {
	return [6]Plane{
		NewPlane(Vec3{-1, 0, 0}, Vec3{b.Min[0], 0, 0}),
		NewPlane(Vec3{1, 0, 0}, Vec3{b.Max[0], 0, 0}),
		NewPlane(Vec3{0, -1, 0}, Vec3{0, b.Min[1], 0}),
		NewPlane(Vec3{0, 1, 0}, Vec3{0, b.Max[1], 0}),
		NewPlane(Vec3{0, 0, -1}, Vec3{0, 0, b.Min[2]}),
		NewPlane(Vec3{0, 0, 1}, Vec3{0, 0, b.Max[2]}),
	}
}

// Rotate rebuilds the box as the bounds of its 8 corners rotated by angle
// around axis, about the box center.
func (b Bounds) Rotate(axis Vec3, angle float32) Bounds {
	c := b.Center()
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		rotated := corner.Sub(c).Rotate(axis, angle).Add(c)
		out = out.Union(rotated)
	}
	return out
}

// IntersectRay performs the standard slab test, returning the entry/exit
// parameters of the ray's overlap with the box. ok is false when the ray
// misses the box or the overlap lies entirely behind the ray origin.
func (b Bounds) IntersectRay(r Ray) (tMin, tMax float32, ok bool) {
	tMin, tMax = 0, math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < b.Min[axis] || r.Origin[axis] > b.Max[axis] {
				return 0, 0, false
			}
			continue
		}
		invD := 1.0 / r.Direction[axis]
		t0 := (b.Min[axis] - r.Origin[axis]) * invD
		t1 := (b.Max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

// Contains reports whether point lies within the box (inclusive).
func (b Bounds) Contains(point Vec3) bool {
	return point[0] >= b.Min[0] && point[0] <= b.Max[0] &&
		point[1] >= b.Min[1] && point[1] <= b.Max[1] &&
		point[2] >= b.Min[2] && point[2] <= b.Max[2]
}
