package object

import (
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

// Cuboid is an axis-aligned box, optionally rotated about its own center,
// traced by testing its six bounding planes and rejecting hits that land
// outside the other four half-spaces -- the same algorithm as the original
// engine's CubicObject, generalized from a fixed AABB to a rotated bounds.
type Cuboid struct {
	base
	local  types.Bounds // untransformed box, for the rotated-plane test
	axis   types.Vec3
	angle  float32
	origin types.Vec3
}

func NewCuboid(origin types.Vec3, width, height, depth float32, mat *material.Material) *Cuboid {
	half := types.Vec3{width * 0.5, height * 0.5, depth * 0.5}
	return &Cuboid{
		base:   base{mat},
		local:  types.Bounds{Min: origin.Sub(half), Max: origin.Add(half)},
		origin: origin,
	}
}

// Rotate sets a rotation applied about the cuboid's own center before
// tracing. Only one rotation is retained, matching the original's
// single-axis CubicObject::Rotate.
func (c *Cuboid) Rotate(axis types.Vec3, angle float32) {
	c.axis = axis.Normalize()
	c.angle = angle
}

func (c *Cuboid) Center() types.Vec3 { return c.origin }

func (c *Cuboid) Bounds() types.Bounds {
	if c.angle == 0 {
		return c.local
	}
	return c.local.Rotate(c.axis, c.angle)
}

// toLocal undoes the cuboid's rotation, so the six half-space tests can run
// against the original axis-aligned planes.
func (c *Cuboid) toLocal(v types.Vec3) types.Vec3 {
	if c.angle == 0 {
		return v
	}
	return v.Sub(c.origin).Rotate(c.axis, -c.angle).Add(c.origin)
}

func (c *Cuboid) toWorld(v types.Vec3) types.Vec3 {
	if c.angle == 0 {
		return v
	}
	return v.Sub(c.origin).Rotate(c.axis, c.angle).Add(c.origin)
}

func (c *Cuboid) Trace(r types.Ray, hit *types.Collision) bool {
	localRay := types.Ray{Origin: c.toLocal(r.Origin), Direction: c.toLocal(r.Origin.Add(r.Direction)).Sub(c.toLocal(r.Origin))}
	planes := c.local.Planes()

	found := false
	bestT := hit.T
	var bestPoint, bestNormal types.Vec3

	for i, p := range planes {
		t, ok := p.Intersect(localRay)
		if !ok || t < 1e-4 || t >= bestT {
			continue
		}
		point := localRay.At(t)
		hitFace := true
		for j, q := range planes {
			if i/2 == j/2 {
				continue
			}
			if q.SignedDistance(point) > 1e-4 {
				hitFace = false
				break
			}
		}
		if !hitFace {
			continue
		}
		found = true
		bestT = t
		bestPoint = point
		bestNormal = p.Normal
	}

	if !found {
		return false
	}

	worldPoint := c.toWorld(bestPoint)
	worldNormal := c.toWorld(c.origin.Add(bestNormal)).Sub(c.origin).Normalize()
	*hit = types.Collision{
		T:        bestT,
		Point:    worldPoint,
		Normal:   worldNormal,
		UV:       planarUV(bestPoint, bestNormal),
		Material: c.mat.ID(),
	}
	return true
}
