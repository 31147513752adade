package render

import (
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/rng"
	"github.com/solstice-render/pathtrace/scene"
	"github.com/solstice-render/pathtrace/types"
)

const (
	// MaxDepth bounds recursion on every TraceStep call regardless of mode.
	MaxDepth = 32
	// FastRenderDepth is the bounce budget used when fast rendering is
	// requested (interactive camera movement, live preview): only the
	// primary hit and one indirect bounce are traced.
	FastRenderDepth = 2
	// ContinuationEpsilon offsets a continuation ray's origin off the
	// surface along its normal, avoiding immediate self-intersection.
	// Kept as a fixed scene-unit constant rather than derived from scene
	// scale, matching the original engine (and inheriting its implicit
	// assumption that scenes are built at roughly unit unit scale).
	ContinuationEpsilon = 0.03
	maxTraceDistance    = 1e30
)

// TraceScene resolves the radiance arriving along r, recursing through
// indirect bounces up to the active depth cap. fastRender caps recursion at
// FastRenderDepth instead of MaxDepth.
func TraceScene(sc *scene.Scene, r types.Ray, fastRender bool, src *rng.Source, cones *rng.ConeTable) types.Vec3 {
	color, _ := traceStep(sc, r, 0, fastRender, src, cones)
	return color
}

// traceStep also returns the point the ray came to rest at (a surface hit,
// or an arbitrary point far along a sky miss), which shade needs to compute
// Fog's depth-0 scatter distance for whichever bounce it recurses into.
func traceStep(sc *scene.Scene, r types.Ray, depth int, fastRender bool, src *rng.Source, cones *rng.ConeTable) (types.Vec3, types.Vec3) {
	limit := MaxDepth
	if fastRender {
		limit = FastRenderDepth
	}
	if depth >= limit {
		return types.Vec3{}, r.Origin
	}

	hit, found := sc.Trace(r, maxTraceDistance)
	if !found {
		return sc.SampleSky(r), r.At(maxTraceDistance)
	}
	return shade(sc, r, hit, depth, fastRender, src, cones), hit.Point
}

// shade dispatches a resolved collision through the material contract: it
// samples the next bounce direction, recurses into it if the material's
// gate says the bounce carries light, then hands the material's own Sample
// the full context (view, normal, bounce direction, recursive radiance) so
// it can compute its own direct/indirect combination formula.
func shade(sc *scene.Scene, r types.Ray, hit types.Collision, depth int, fastRender bool, src *rng.Source, cones *rng.ConeTable) types.Vec3 {
	mat := material.Lookup(hit.Material)
	if mat == nil {
		return types.Vec3{}
	}

	reflectDir := material.Reflection(mat, hit.Normal, r.Direction, src, cones)

	limit := MaxDepth
	if fastRender {
		limit = FastRenderDepth
	}

	var indirect, indirectPos types.Vec3
	indirectPos = hit.Point
	if material.WillUseIndirectLight(mat, reflectDir, hit.Normal) && depth+1 < limit {
		origin := hit.Point.Add(hit.Normal.Scale(ContinuationEpsilon))
		nextRay := types.NewRay(origin, reflectDir)
		indirect, indirectPos = traceStep(sc, nextRay, depth+1, fastRender, src, cones)
	}

	return material.Sample(mat, material.SampleInput{
		Depth:            depth,
		UV:               hit.UV,
		Normal:           hit.Normal,
		View:             r.Direction,
		ReflectDir:       reflectDir,
		Indirect:         indirect,
		IndirectDistance: hit.Point.Distance(indirectPos),
	}, src)
}
