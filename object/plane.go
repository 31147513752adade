package object

import (
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

const infinite = 1e30

// Plane is an unbounded flat surface, so it never contributes to a finite
// scene bounding box; the scene BVH keeps unbounded objects in an untreed
// fallback list rather than forcing the octree to cover all of space.
type Plane struct {
	base
	Surface types.Plane
}

func NewPlane(normal, point types.Vec3, mat *material.Material) *Plane {
	return &Plane{base: base{mat}, Surface: types.NewPlane(normal, point)}
}

func (p *Plane) Center() types.Vec3 {
	return p.Surface.Normal.Scale(-p.Surface.Offset)
}

func (p *Plane) Bounds() types.Bounds {
	inf := types.Vec3{infinite, infinite, infinite}
	return types.Bounds{Min: inf.Neg(), Max: inf}
}

func (p *Plane) Trace(r types.Ray, hit *types.Collision) bool {
	t, ok := p.Surface.Intersect(r)
	if !ok || t < 1e-4 || t >= hit.T {
		return false
	}
	point := r.At(t)
	normal := p.Surface.Normal
	if normal.Dot(r.Direction) > 0 {
		normal = normal.Neg()
	}
	*hit = types.Collision{
		T:        t,
		Point:    point,
		Normal:   normal,
		UV:       planarUV(point, normal),
		Material: p.mat.ID(),
	}
	return true
}
