// Package scene holds the traceable scene graph: the coarse object BVH, the
// camera, and the sky/background term sampled by rays that escape it.
package scene

import (
	"fmt"
	"math"

	"github.com/solstice-render/pathtrace/accel"
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/object"
	"github.com/solstice-render/pathtrace/types"
)

const (
	sceneBVHCapacity  = 2
	skyBrightnessBias = 3
)

// Scene is the top-level container a render pulls objects and the camera
// from. Objects with infinite bounds (Plane) never enter the octree; they
// sit in a small linear fallback list the octree can't represent.
type Scene struct {
	Camera *Camera
	Sky    *material.Material

	bounded   []object.Object
	unbounded []object.Object
	tree      *accel.Tree[int]
}

func New() *Scene {
	return &Scene{}
}

// Add appends an object to the scene, routing objects with an unbounded
// extent to the linear fallback list instead of the BVH.
func (s *Scene) Add(o object.Object) {
	b := o.Bounds()
	const unboundedThreshold = 1e20
	if b.Max[0] > unboundedThreshold || b.Max[1] > unboundedThreshold || b.Max[2] > unboundedThreshold {
		s.unbounded = append(s.unbounded, o)
		return
	}
	s.bounded = append(s.bounded, o)
}

// Optimize (re)builds the object BVH. Call once after every object has been
// added; the depth formula below intentionally collapses to a disabled
// tree (handled as a linear scan) for small object counts, exactly as the
// original scene optimizer does.
func (s *Scene) Optimize() {
	n := len(s.bounded)
	if n == 0 {
		s.tree = nil
		return
	}
	depth := int(math.Log(float64(n))/math.Log(8) + 0.5 - 2)
	if depth <= 0 {
		s.tree = nil
		return
	}
	s.tree = accel.Build(indexRange(n), func(i int) types.Bounds {
		return s.bounded[i].Bounds()
	}, accel.Params{Capacity: sceneBVHCapacity, MaxDepth: depth})
}

func indexRange(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Trace finds the closest intersection of r with the scene, within [0, maxT].
func (s *Scene) Trace(r types.Ray, maxT float32) (types.Collision, bool) {
	hit := types.NoHit(maxT)
	found := false

	for _, o := range s.unbounded {
		if o.Trace(r, &hit) {
			found = true
		}
	}

	if s.tree != nil && s.tree.Enabled() {
		_, treeFound := s.tree.Trace(r, hit.T, func(idx int) (float32, bool) {
			if s.bounded[idx].Trace(r, &hit) {
				return hit.T, true
			}
			return 0, false
		})
		found = found || treeFound
	} else {
		for _, o := range s.bounded {
			if o.Trace(r, &hit) {
				found = true
			}
		}
	}

	return hit, found
}

// Stats summarizes scene composition for the "scene info" CLI command.
func (s *Scene) Stats() string {
	treeStatus := "disabled (linear scan)"
	if s.tree != nil && s.tree.Enabled() {
		treeStatus = "enabled"
	}
	return fmt.Sprintf(
		"bounded objects: %d\nunbounded objects: %d\nobject BVH: %s\nsky: %t",
		len(s.bounded), len(s.unbounded), treeStatus, s.Sky != nil,
	)
}

// SampleSky is the radiance returned for rays that escape the scene
// entirely. The original engine brightens the sky term relative to the
// material's stored color so that a modest sky color still reads as a
// light source during accumulation.
func (s *Scene) SampleSky(r types.Ray) types.Vec3 {
	if s.Sky == nil {
		return types.Vec3{}
	}
	uv := object.SphereMapUV(r.Direction.Normalize())
	return material.ShadeColor(s.Sky, uv).Scale(skyBrightnessBias)
}
