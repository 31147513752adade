package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

func singleTriangleData() *MeshData {
	data := &MeshData{
		Vertices: []types.Vec3{
			{-1, -1, 0},
			{1, -1, 0},
			{0, 1, 0},
		},
		Faces: []Face{
			{V: [3]int32{0, 1, 2}, N: [3]int32{-1, -1, -1}, T: [3]int32{-1, -1, -1}, MaterialIdx: -1},
		},
	}
	data.Freeze()
	return data
}

func TestMeshTraceHitsTriangle(t *testing.T) {
	data := singleTriangleData()
	mesh := NewMesh(data, []int{0}, material.New(material.Diffuse))

	r := types.NewRay(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(1e30)
	if !mesh.Trace(r, &hit) {
		t.Fatal("expected a ray through the triangle's interior to hit")
	}
	if hit.Normal.Dot(r.Direction) > 0 {
		t.Fatalf("expected the face normal to be flipped toward the ray, got %v", hit.Normal)
	}
}

func TestMeshTraceMissesOutsideTriangle(t *testing.T) {
	data := singleTriangleData()
	mesh := NewMesh(data, []int{0}, material.New(material.Diffuse))

	r := types.NewRay(types.Vec3{5, 5, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(1e30)
	if mesh.Trace(r, &hit) {
		t.Fatal("expected a ray outside the triangle to miss")
	}
}

func TestMeshTraceCollisionFields(t *testing.T) {
	data := singleTriangleData()
	mat := material.New(material.Diffuse)
	mesh := NewMesh(data, []int{0}, mat)

	r := types.NewRay(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 1})
	hit := types.NoHit(1e30)
	if !mesh.Trace(r, &hit) {
		t.Fatal("expected a ray through the triangle's interior to hit")
	}

	want := types.Collision{
		T:        5,
		Point:    types.Vec3{0, 0, 0},
		Normal:   types.Vec3{0, 0, -1},
		UV:       types.Vec2{0, 0},
		Material: mat.ID(),
	}
	if diff := cmp.Diff(want, hit); diff != "" {
		t.Fatalf("collision mismatch (-want +got):\n%s", diff)
	}
}

func TestMeshBoundsCoversVertices(t *testing.T) {
	data := singleTriangleData()
	mesh := NewMesh(data, []int{0}, material.New(material.Diffuse))
	b := mesh.Bounds()
	for _, v := range data.Vertices {
		if !b.Contains(v) {
			t.Fatalf("mesh bounds %v does not contain vertex %v", b, v)
		}
	}
}
