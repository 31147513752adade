package object

import (
	"github.com/chewxy/math32"
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

type Sphere struct {
	base
	Origin types.Vec3
	Radius float32
}

func NewSphere(origin types.Vec3, radius float32, mat *material.Material) *Sphere {
	return &Sphere{base: base{mat}, Origin: origin, Radius: radius}
}

func (s *Sphere) Center() types.Vec3 { return s.Origin }

func (s *Sphere) Bounds() types.Bounds {
	r := types.Vec3{s.Radius, s.Radius, s.Radius}
	return types.Bounds{Min: s.Origin.Sub(r), Max: s.Origin.Add(r)}
}

func (s *Sphere) Trace(r types.Ray, hit *types.Collision) bool {
	oc := r.Origin.Sub(s.Origin)
	b := oc.Dot(r.Direction)
	c := oc.LenSq() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 1e-4 {
		t = -b + sq
	}
	if t < 1e-4 || t >= hit.T {
		return false
	}
	point := r.At(t)
	normal := point.Sub(s.Origin).Scale(1 / s.Radius)
	*hit = types.Collision{
		T:        t,
		Point:    point,
		Normal:   normal,
		UV:       sphereUV(normal),
		Material: s.mat.ID(),
	}
	return true
}
