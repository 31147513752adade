package object

import (
	"testing"

	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

func TestSphereTrace(t *testing.T) {
	mat := material.New(material.Diffuse)
	s := NewSphere(types.Vec3{0, 0, 0}, 1, mat)

	r := types.NewRay(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(1e30)
	if !s.Trace(r, &hit) {
		t.Fatal("expected a ray through the sphere's center to hit")
	}
	if got, want := hit.T, float32(4); absF(got-want) > 1e-4 {
		t.Fatalf("hit.T = %f; want %f", got, want)
	}
	if got, want := hit.Normal, (types.Vec3{0, 0, -1}); got != want {
		t.Fatalf("hit.Normal = %v; want %v", got, want)
	}
	if hit.Material != mat.ID() {
		t.Fatalf("hit.Material = %d; want %d", hit.Material, mat.ID())
	}
}

func TestSphereTraceMiss(t *testing.T) {
	s := NewSphere(types.Vec3{0, 0, 0}, 1, material.New(material.Diffuse))
	r := types.NewRay(types.Vec3{0, 5, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(1e30)
	if s.Trace(r, &hit) {
		t.Fatal("expected a ray passing above the sphere to miss")
	}
}

func TestSphereTraceRespectsExistingCloserHit(t *testing.T) {
	s := NewSphere(types.Vec3{0, 0, 0}, 1, material.New(material.Diffuse))
	r := types.NewRay(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(3) // closer than the sphere's t=4 entry
	if s.Trace(r, &hit) {
		t.Fatal("expected sphere hit farther than the current best-so-far to be rejected")
	}
}

func TestPlaneTraceFlipsNormalTowardRay(t *testing.T) {
	p := NewPlane(types.Vec3{0, 1, 0}, types.Vec3{0, 0, 0}, material.New(material.Diffuse))
	r := types.NewRay(types.Vec3{0, 5, 0}, types.Vec3{0, -1, 0})
	hit := types.NoHit(1e30)
	if !p.Trace(r, &hit) {
		t.Fatal("expected a downward ray to hit the ground plane")
	}
	if hit.Normal.Dot(r.Direction) > 0 {
		t.Fatalf("expected the surface normal to be flipped toward the incoming ray, got %v", hit.Normal)
	}
}

func TestDiscTraceRejectsOutsideRadius(t *testing.T) {
	d := NewDisc(types.Vec3{0, 0, 0}, types.Vec3{0, 1, 0}, 1, material.New(material.Diffuse))
	r := types.NewRay(types.Vec3{5, 5, 0}, types.Vec3{0, -1, 0})
	hit := types.NoHit(1e30)
	if d.Trace(r, &hit) {
		t.Fatal("expected a ray outside the disc's radius to miss")
	}
}

func TestQuadTraceWithinBounds(t *testing.T) {
	q := NewQuad(types.Vec3{0, 0, 0}, types.Vec3{1, 0, 0}, types.Vec3{0, 1, 0}, material.New(material.Diffuse))
	r := types.NewRay(types.Vec3{0.5, 0.5, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(1e30)
	if !q.Trace(r, &hit) {
		t.Fatal("expected a ray through the quad's interior to hit")
	}
	if got, want := hit.UV, (types.Vec2{0.5, 0.5}); got != want {
		t.Fatalf("hit.UV = %v; want %v", got, want)
	}
}

func TestQuadTraceOutsideBounds(t *testing.T) {
	q := NewQuad(types.Vec3{0, 0, 0}, types.Vec3{1, 0, 0}, types.Vec3{0, 1, 0}, material.New(material.Diffuse))
	r := types.NewRay(types.Vec3{5, 0.5, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(1e30)
	if q.Trace(r, &hit) {
		t.Fatal("expected a ray outside the quad's u range to miss")
	}
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
