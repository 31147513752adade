// Package rng is the random-number kernel shared by the integrator and the
// material library: a thread-local scalar/disc sampler plus a precomputed
// table of cone-biased reflection directions.
package rng

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/solstice-render/pathtrace/types"
)

// Source is a single goroutine's private random stream. The worker pool
// hands one Source to each worker so no locking is needed across bands.
type Source struct {
	r *rand.Rand
}

// New seeds a Source. Callers reseed once per frame (per §5, thread-local
// RNG state persists across pixels within a frame but the seed itself is
// frame-scoped) by constructing a fresh Source.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float returns a uniform value in [0, 1).
func (s *Source) Float() float32 {
	return s.r.Float32()
}

// FloatRange returns a uniform value in [lo, hi).
func (s *Source) FloatRange(lo, hi float32) float32 {
	return lo + s.Float()*(hi-lo)
}

// Disc returns a point uniformly sampled from the unit disc, used both for
// depth-of-field lens sampling and for per-pixel antialiasing jitter.
func (s *Source) Disc() types.Vec2 {
	for {
		x := s.FloatRange(-1, 1)
		y := s.FloatRange(-1, 1)
		if x*x+y*y <= 1 {
			return types.Vec2{x, y}
		}
	}
}

// UnitVector returns a uniformly distributed direction on the unit sphere,
// via the standard rejection-free spherical parametrization.
func (s *Source) UnitVector() types.Vec3 {
	z := s.FloatRange(-1, 1)
	a := s.FloatRange(0, 2*math32.Pi)
	r := math32.Sqrt(1 - z*z)
	return types.Vec3{r * math32.Cos(a), r * math32.Sin(a), z}
}
