package texio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solstice-render/pathtrace/types"
)

const testOBJ = `
v -1 -1 0
v 1 -1 0
v 0 1 0
vn 0 0 -1
vt 0 0
vt 1 0
vt 0.5 1
f 1//1 2//1 3//1
`

func TestLoadMeshParsesTriangle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(path, []byte(testOBJ), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadMesh(path, types.Vec3{}, types.Vec3{1, 1, 1}, false)
	if err != nil {
		t.Fatalf("LoadMesh() error = %v", err)
	}
	if len(data.Vertices) != 3 {
		t.Fatalf("len(Vertices) = %d; want 3", len(data.Vertices))
	}
	if len(data.Faces) != 1 {
		t.Fatalf("len(Faces) = %d; want 1", len(data.Faces))
	}
	// Winding is reversed: the OBJ's 1,2,3 (0-indexed 0,1,2) becomes 2,1,0.
	f := data.Faces[0]
	if f.V != [3]int32{2, 1, 0} {
		t.Fatalf("Faces[0].V = %v; want reversed winding [2,1,0]", f.V)
	}
}

func TestLoadMeshAppliesScaleAndTranslation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(path, []byte(testOBJ), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadMesh(path, types.Vec3{10, 0, 0}, types.Vec3{2, 2, 2}, false)
	if err != nil {
		t.Fatalf("LoadMesh() error = %v", err)
	}
	// First OBJ vertex (-1,-1,0) scaled by 2 then translated by (10,0,0).
	want := types.Vec3{8, -2, 0}
	if data.Vertices[0] != want {
		t.Fatalf("Vertices[0] = %v; want %v", data.Vertices[0], want)
	}
}

func TestLoadMeshInvertsNormals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(path, []byte(testOBJ), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadMesh(path, types.Vec3{}, types.Vec3{1, 1, 1}, true)
	if err != nil {
		t.Fatalf("LoadMesh() error = %v", err)
	}
	if got, want := data.Normals[0], (types.Vec3{0, 0, 1}); got != want {
		t.Fatalf("inverted normal = %v; want %v", got, want)
	}
}

func TestLoadMeshRejectsTooFewFaceVertices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.obj")
	body := "v 0 0 0\nv 1 0 0\nf 1 2\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMesh(path, types.Vec3{}, types.Vec3{1, 1, 1}, false); err == nil {
		t.Fatal("expected a face with fewer than 3 vertices to error")
	}
}
