package object

import (
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

// Quad is a bounded parallelogram spanned by two edge vectors from Origin,
// used for area lights and wall panels where a Plane's infinite extent is
// inconvenient.
type Quad struct {
	base
	Origin  types.Vec3
	U, V    types.Vec3
	Surface types.Plane
}

func NewQuad(origin, u, v types.Vec3, mat *material.Material) *Quad {
	normal := u.Cross(v)
	return &Quad{base: base{mat}, Origin: origin, U: u, V: v, Surface: types.NewPlane(normal, origin)}
}

func (q *Quad) Center() types.Vec3 {
	return q.Origin.Add(q.U.Scale(0.5)).Add(q.V.Scale(0.5))
}

func (q *Quad) Bounds() types.Bounds {
	b := types.EmptyBounds()
	b = b.Union(q.Origin)
	b = b.Union(q.Origin.Add(q.U))
	b = b.Union(q.Origin.Add(q.V))
	b = b.Union(q.Origin.Add(q.U).Add(q.V))
	// Pad a zero-thickness box so slab tests against the BVH don't treat a
	// perfectly axis-aligned quad as having zero volume on that axis.
	const pad = 1e-4
	padVec := types.Vec3{pad, pad, pad}
	return types.Bounds{Min: b.Min.Sub(padVec), Max: b.Max.Add(padVec)}
}

func (q *Quad) Trace(r types.Ray, hit *types.Collision) bool {
	t, ok := q.Surface.Intersect(r)
	if !ok || t < 1e-4 || t >= hit.T {
		return false
	}
	point := r.At(t)
	rel := point.Sub(q.Origin)
	uLenSq := q.U.LenSq()
	vLenSq := q.V.LenSq()
	uCoord := rel.Dot(q.U) / uLenSq
	vCoord := rel.Dot(q.V) / vLenSq
	if uCoord < 0 || uCoord > 1 || vCoord < 0 || vCoord > 1 {
		return false
	}
	normal := q.Surface.Normal
	if normal.Dot(r.Direction) > 0 {
		normal = normal.Neg()
	}
	*hit = types.Collision{
		T:        t,
		Point:    point,
		Normal:   normal,
		UV:       types.Vec2{uCoord, vCoord},
		Material: q.mat.ID(),
	}
	return true
}
