// Package render implements the Monte-Carlo path integrator, the frame
// accumulator it writes into, and the worker pool that drives both across
// an image.
package render

import (
	"github.com/chewxy/math32"
	"github.com/solstice-render/pathtrace/types"
)

const gamma = 2.2

// Frame accumulates a running mean of per-pixel radiance samples along
// with auxiliary debug buffers (first-hit normal, depth, material id) that
// a still render can dump alongside the beauty image. Reset clears the
// running mean without reallocating the backing buffers, so repeated
// interactive-mode redraws (camera moved, accumulation restarted) don't
// churn the allocator every frame.
type Frame struct {
	Width, Height int

	color   []types.Vec3
	samples []uint32

	Normal     []types.Vec3
	Depth      []float32
	MaterialID []uint32
}

func NewFrame(width, height int) *Frame {
	n := width * height
	return &Frame{
		Width:      width,
		Height:     height,
		color:      make([]types.Vec3, n),
		samples:    make([]uint32, n),
		Normal:     make([]types.Vec3, n),
		Depth:      make([]float32, n),
		MaterialID: make([]uint32, n),
	}
}

// Reset zeroes the accumulated samples, keeping the buffers allocated.
func (f *Frame) Reset() {
	for i := range f.color {
		f.color[i] = types.Vec3{}
		f.samples[i] = 0
	}
}

// AddSample folds one more radiance sample into pixel (x, y)'s running
// mean: mean_n = mean_{n-1} + (sample - mean_{n-1}) / n. This is
// numerically steadier over thousands of samples than accumulate-then-
// divide, and lets a render be displayed (and its image pulled) at any
// point mid-accumulation.
func (f *Frame) AddSample(x, y int, sample types.Vec3) {
	idx := y*f.Width + x
	f.samples[idx]++
	n := float32(f.samples[idx])
	mean := f.color[idx]
	f.color[idx] = mean.Add(sample.Sub(mean).Scale(1 / n))
}

// SetFirstHit records the auxiliary buffers for a pixel's primary ray,
// overwriting any earlier sample's debug data (they're diagnostic, not
// accumulated).
func (f *Frame) SetFirstHit(x, y int, normal types.Vec3, depth float32, matID uint32) {
	idx := y*f.Width + x
	f.Normal[idx] = normal
	f.Depth[idx] = depth
	f.MaterialID[idx] = matID
}

// SampleCount returns how many samples pixel (x, y) has accumulated.
func (f *Frame) SampleCount(x, y int) uint32 {
	return f.samples[y*f.Width+x]
}

// Pixel returns a pixel's gamma-corrected 8-bit RGB color.
func (f *Frame) Pixel(x, y int) (r, g, b uint8) {
	c := f.color[y*f.Width+x]
	return gammaByte(c[0]), gammaByte(c[1]), gammaByte(c[2])
}

func gammaByte(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	corrected := math32.Pow(v, 1.0/gamma)
	if corrected > 1 {
		corrected = 1
	}
	return uint8(corrected*255 + 0.5)
}
