package render

import (
	"testing"

	"github.com/solstice-render/pathtrace/types"
)

func TestAddSampleAccumulatesRunningMean(t *testing.T) {
	f := NewFrame(2, 2)
	f.AddSample(0, 0, types.Vec3{1, 0, 0})
	f.AddSample(0, 0, types.Vec3{0, 1, 0})
	f.AddSample(0, 0, types.Vec3{0, 0, 1})

	if got := f.SampleCount(0, 0); got != 3 {
		t.Fatalf("SampleCount() = %d; want 3", got)
	}

	// mean after 3 distinct unit-axis samples is (1/3, 1/3, 1/3).
	c := f.color[0]
	want := float32(1.0 / 3.0)
	for i := 0; i < 3; i++ {
		if d := c[i] - want; d > 1e-4 || d < -1e-4 {
			t.Fatalf("color[%d] = %f; want %f", i, c[i], want)
		}
	}
}

func TestResetClearsAccumulationNotBuffers(t *testing.T) {
	f := NewFrame(1, 1)
	f.AddSample(0, 0, types.Vec3{1, 1, 1})
	f.Reset()
	if got := f.SampleCount(0, 0); got != 0 {
		t.Fatalf("SampleCount() after Reset() = %d; want 0", got)
	}
	r, g, b := f.Pixel(0, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("Pixel() after Reset() = (%d,%d,%d); want (0,0,0)", r, g, b)
	}
}

func TestPixelGammaCorrectsAndClamps(t *testing.T) {
	f := NewFrame(1, 1)
	f.AddSample(0, 0, types.Vec3{1, 2, -1})
	r, g, b := f.Pixel(0, 0)
	if r != 255 {
		t.Fatalf("Pixel().r for input 1.0 = %d; want 255", r)
	}
	if g != 255 {
		t.Fatalf("Pixel().g for input > 1.0 = %d; want clamped to 255", g)
	}
	if b != 0 {
		t.Fatalf("Pixel().b for negative input = %d; want clamped to 0", b)
	}
}

func TestSetFirstHitOverwritesDebugBuffers(t *testing.T) {
	f := NewFrame(1, 1)
	f.SetFirstHit(0, 0, types.Vec3{0, 1, 0}, 5, 7)
	if f.Normal[0] != (types.Vec3{0, 1, 0}) || f.Depth[0] != 5 || f.MaterialID[0] != 7 {
		t.Fatalf("SetFirstHit() did not populate debug buffers correctly")
	}
}
