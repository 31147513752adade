package types

import "testing"

func TestBoundsUnion(t *testing.T) {
	b := EmptyBounds()
	b = b.Union(Vec3{1, 2, 3})
	b = b.Union(Vec3{-1, 5, 0})
	if got, want := b.Min, (Vec3{-1, 2, 0}); got != want {
		t.Fatalf("Min = %v; want %v", got, want)
	}
	if got, want := b.Max, (Vec3{1, 5, 3}); got != want {
		t.Fatalf("Max = %v; want %v", got, want)
	}
}

func TestBoundsIntersectRayHit(t *testing.T) {
	b := Bounds{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	r := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 1})
	tMin, tMax, ok := b.IntersectRay(r)
	if !ok {
		t.Fatal("expected ray through box center to hit")
	}
	if math32Abs(tMin-4) > 1e-4 || math32Abs(tMax-6) > 1e-4 {
		t.Fatalf("tMin, tMax = %f, %f; want 4, 6", tMin, tMax)
	}
}

func TestBoundsIntersectRayMiss(t *testing.T) {
	b := Bounds{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	r := NewRay(Vec3{0, 5, -5}, Vec3{0, 0, 1})
	if _, _, ok := b.IntersectRay(r); ok {
		t.Fatal("expected ray passing above the box to miss")
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: Vec3{0, 0, 0}, Max: Vec3{2, 2, 2}}
	if !b.Contains(Vec3{1, 1, 1}) {
		t.Fatal("expected center point to be contained")
	}
	if b.Contains(Vec3{3, 1, 1}) {
		t.Fatal("expected out-of-range point to not be contained")
	}
}

func TestBoundsRotateKeepsExtentAlongAxis(t *testing.T) {
	b := Bounds{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	rotated := b.Rotate(Vec3{0, 1, 0}, 0.78539816)
	size := rotated.Max.Sub(rotated.Min)
	// A cube rotated about its own up axis keeps the same height.
	if math32Abs(size[1]-2) > 1e-4 {
		t.Fatalf("rotated height = %f; want 2", size[1])
	}
}
