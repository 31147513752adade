package material

import (
	"github.com/chewxy/math32"
	"github.com/solstice-render/pathtrace/rng"
	"github.com/solstice-render/pathtrace/types"
)

// fogScatterFactor scales the squared distance/density product Fog's depth-0
// scatter probability is built from (material.cpp applies the same factor to
// an internally rescaled density; spec's table states it directly against
// the parsed density, so that's what we follow here).
const fogScatterFactor = 0.00005

// SampleInput carries the per-bounce context Sample needs to evaluate a
// material's contribution. Flattened into a struct rather than threaded as
// positional parameters since, unlike the original's fixed C-style Sample
// signature, not every field applies to every Kind.
type SampleInput struct {
	Depth      int
	UV         types.Vec2
	Normal     types.Vec3 // oriented against View
	View       types.Vec3 // primary ray direction arriving at the hit (camera-to-hit)
	ReflectDir types.Vec3 // bounce direction Reflection already sampled
	Indirect   types.Vec3 // recursively traced radiance along ReflectDir

	// IndirectDistance is the distance from this hit to wherever the
	// indirect ray lands (the next collision, or a point along it on a sky
	// miss). Only Fog's depth-0 scatter term uses it.
	IndirectDistance float32
}

// Sample returns this bounce's outgoing radiance: an emitted color for
// Light, or a combination of the surface's own reflectance and the
// recursively-traced indirect term for everything else. Each variant owns
// its full combination formula -- there is no generic direct+indirect blend
// applied by the caller.
func Sample(m *Material, in SampleInput, src *rng.Source) types.Vec3 {
	diffuse := ShadeColor(m, in.UV)

	switch m.Kind {
	case Light:
		return diffuse.Scale(m.Intensity)

	case Diffuse:
		return diffuse.MulVec(in.Indirect).Scale(maxF32(0, in.Normal.Dot(in.ReflectDir)))

	case Metal:
		cosTerm := maxF32(0, in.Normal.Dot(in.ReflectDir))
		diffuseContrib := diffuse.MulVec(in.Indirect).Scale(cosTerm)
		reflectContrib := diffuse.MulVec(in.Indirect)
		return diffuseContrib.Scale(m.Roughness).Add(reflectContrib.Scale(1 - m.Roughness))

	case Mirror, Glass, Liquid:
		return in.Indirect.MulVec(diffuse)

	case Ceramic:
		return ceramicSample(m, in, diffuse)

	case Glow:
		return ceramicSample(m, in, diffuse).Add(m.Emission)

	case Fog:
		if in.Depth != 0 {
			return in.Indirect
		}
		d := in.IndirectDistance
		threshold := saturate(d * d * m.Density * fogScatterFactor)
		if src.Float() < threshold {
			return diffuse
		}
		return in.Indirect

	default:
		return diffuse
	}
}

// ceramicSample implements the half-vector specular blend shared by Ceramic
// and Glow: a sharp highlight around the half-vector between the incoming
// view direction and the sampled bounce, fading into the diffuse,
// cosine-weighted indirect term.
func ceramicSample(m *Material, in SampleInput, diffuse types.Vec3) types.Vec3 {
	h := in.ReflectDir.Sub(in.View).Normalize()
	dotSpec := math32.Pow(h.Dot(in.Normal), 50)

	diffuseContrib := diffuse.MulVec(in.Indirect).Scale(maxF32(0, in.Normal.Dot(in.ReflectDir)))
	return in.Indirect.Scale(dotSpec).Add(diffuseContrib.Scale(1 - dotSpec))
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func saturate(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
