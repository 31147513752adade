package scene

import (
	"testing"

	"github.com/solstice-render/pathtrace/rng"
	"github.com/solstice-render/pathtrace/types"
)

func TestCameraCenterRayPointsAtLookAt(t *testing.T) {
	c := NewCamera(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 0}, types.Vec3{0, 1, 0}, 0.78539816, 1, 0, 5)
	r := c.Ray(0.5, 0.5, rng.New(1))
	dir := r.Direction
	if dir[0] > 1e-4 || dir[1] > 1e-4 {
		t.Fatalf("expected the center ray to point straight down +Z, got %v", dir)
	}
	if dir[2] <= 0 {
		t.Fatalf("expected the center ray to point toward LookAt, got %v", dir)
	}
}

func TestCameraApertureJittersOrigin(t *testing.T) {
	c := NewCamera(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 0}, types.Vec3{0, 1, 0}, 0.78539816, 1, 1.0, 5)
	src := rng.New(9)
	origins := map[types.Vec3]bool{}
	for i := 0; i < 20; i++ {
		r := c.Ray(0.5, 0.5, src)
		origins[r.Origin] = true
	}
	if len(origins) < 2 {
		t.Fatal("expected a non-zero aperture to jitter ray origins across samples")
	}
}

func TestCameraZeroApertureIsPinhole(t *testing.T) {
	c := NewCamera(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 0}, types.Vec3{0, 1, 0}, 0.78539816, 1, 0, 5)
	src := rng.New(9)
	for i := 0; i < 10; i++ {
		r := c.Ray(0.3, 0.7, src)
		if r.Origin != c.Position {
			t.Fatalf("expected every ray to originate at the camera position with zero aperture, got %v", r.Origin)
		}
	}
}
