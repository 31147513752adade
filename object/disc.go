package object

import (
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

type Disc struct {
	base
	Origin  types.Vec3
	Surface types.Plane
	Radius  float32
}

func NewDisc(origin, normal types.Vec3, radius float32, mat *material.Material) *Disc {
	return &Disc{base: base{mat}, Origin: origin, Surface: types.NewPlane(normal, origin), Radius: radius}
}

func (d *Disc) Center() types.Vec3 { return d.Origin }

func (d *Disc) Bounds() types.Bounds {
	r := types.Vec3{d.Radius, d.Radius, d.Radius}
	return types.Bounds{Min: d.Origin.Sub(r), Max: d.Origin.Add(r)}
}

func (d *Disc) Trace(r types.Ray, hit *types.Collision) bool {
	t, ok := d.Surface.Intersect(r)
	if !ok || t < 1e-4 || t >= hit.T {
		return false
	}
	point := r.At(t)
	if point.Distance(d.Origin) > d.Radius {
		return false
	}
	normal := d.Surface.Normal
	if normal.Dot(r.Direction) > 0 {
		normal = normal.Neg()
	}
	*hit = types.Collision{
		T:        t,
		Point:    point,
		Normal:   normal,
		UV:       planarUV(point, normal),
		Material: d.mat.ID(),
	}
	return true
}
