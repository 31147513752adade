package scene

import (
	"github.com/chewxy/math32"
	"github.com/solstice-render/pathtrace/rng"
	"github.com/solstice-render/pathtrace/types"
)

// Camera generates primary rays with an optional thin-lens depth-of-field
// model: Aperture > 0 jitters the ray origin across a lens disc and aims
// every ray at the same point on the focal plane, so off-focus geometry
// blurs in proportion to its distance from FocalDistance.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3
	FOVY     float32 // vertical field of view, radians
	Aspect   float32

	Aperture      float32
	FocalDistance float32

	lowerLeft  types.Vec3
	horizontal types.Vec3
	vertical   types.Vec3
	u, v, w    types.Vec3
}

func NewCamera(position, lookAt, up types.Vec3, fovY, aspect, aperture, focalDistance float32) *Camera {
	c := &Camera{
		Position:      position,
		LookAt:        lookAt,
		Up:            up,
		FOVY:          fovY,
		Aspect:        aspect,
		Aperture:      aperture,
		FocalDistance: focalDistance,
	}
	c.rebuild()
	return c
}

func (c *Camera) rebuild() {
	halfHeight := math32.Tan(c.FOVY / 2)
	halfWidth := c.Aspect * halfHeight

	c.w = c.Position.Sub(c.LookAt).Normalize() // points back toward the eye
	c.u = c.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	c.lowerLeft = c.Position.
		Sub(c.u.Scale(halfWidth * c.FocalDistance)).
		Sub(c.v.Scale(halfHeight * c.FocalDistance)).
		Sub(c.w.Scale(c.FocalDistance))
	c.horizontal = c.u.Scale(2 * halfWidth * c.FocalDistance)
	c.vertical = c.v.Scale(2 * halfHeight * c.FocalDistance)
}

// Ray generates the camera ray for normalized screen coordinates s, t in
// [0, 1] (s grows right, t grows up), jittering the lens origin by src when
// Aperture is non-zero.
func (c *Camera) Ray(s, t float32, src *rng.Source) types.Ray {
	origin := c.Position
	if c.Aperture > 0 {
		lens := src.Disc().Scale(c.Aperture / 2)
		origin = origin.Add(c.u.Scale(lens[0])).Add(c.v.Scale(lens[1]))
	}
	target := c.lowerLeft.Add(c.horizontal.Scale(s)).Add(c.vertical.Scale(t))
	return types.NewRay(origin, target.Sub(origin))
}
