// Package material implements the nine surface/volume reflectance models
// and the sampling contract the integrator drives them through.
//
// Materials are dispatched by a tag (Kind), not by a Go interface: a single
// Material value carries every variant's parameters and a switch in each of
// WillUseIndirectLight/Reflection/Sample picks the active behavior. This
// mirrors the original engine's tagged-union material dispatch, chosen there
// (and kept here) to avoid a virtual-call indirection on the hottest path
// in the renderer -- every recursive bounce touches this contract.
package material

import (
	"github.com/solstice-render/pathtrace/types"
)

// Thresholds gating WillUseIndirectLight, lifted straight from the original
// engine's material.cpp (kDiffuseContribThreshold, kDiffuseRoughnessThreshold).
const (
	diffuseContribThreshold = 0.001
	metalRoughnessThreshold = 0.95
)

type Kind int

const (
	Diffuse Kind = iota
	Light
	Metal
	Mirror
	Glass
	Liquid
	Ceramic
	Glow
	Fog
)

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Light:
		return "light"
	case Metal:
		return "metal"
	case Mirror:
		return "mirror"
	case Glass:
		return "glass"
	case Liquid:
		return "liquid"
	case Ceramic:
		return "ceramic"
	case Glow:
		return "glow"
	case Fog:
		return "fog"
	default:
		return "unknown"
	}
}

// Material holds the union of every variant's tunables. Unused fields for a
// given Kind are simply left at their zero value by the parser/constructors.
type Material struct {
	id   uint32
	Kind Kind

	Color     types.Vec3 // base reflectance / emission color
	Emission  types.Vec3 // glow's additive term, layered over its ceramic base
	Texture   *Texture   // optional, overrides Color where non-nil and UV lands on a texel
	Roughness float32    // metal roughness / ceramic shininess driver (shininess = 1-Roughness), 0 = mirror-sharp
	Index     float32    // index of refraction; parsed but unused -- glass/liquid hardcode their own nominal index, see DESIGN.md
	Density   float32    // fog scatter-probability driver
	Intensity float32    // light emission multiplier
}

// idCounter assigns stable, process-unique material ids as scenes are
// parsed; collision records carry the id rather than a pointer so that
// Frame's material-id debug buffer (§4.3) can be a plain uint32 slice.
var (
	idCounter uint32
	registry  = map[uint32]*Material{}
)

func next() uint32 {
	idCounter++
	return idCounter
}

func New(kind Kind) *Material {
	m := &Material{id: next(), Kind: kind}
	registry[m.id] = m
	return m
}

func (m *Material) ID() uint32 { return m.id }

// Lookup resolves a collision's material id back to the Material that
// produced it, so the integrator can dispatch Reflection/Sample from a
// types.Collision without types depending on package material.
func Lookup(id uint32) *Material {
	return registry[id]
}

// WillUseIndirectLight reports whether TraceStep should recurse into the
// direction Reflection already sampled (reflectDir) for this material. Only
// Diffuse and Metal gate on the bounce actually carrying light toward the
// surface; every other non-emissive variant always continues the path, and
// Light terminates it outright.
func WillUseIndirectLight(m *Material, reflectDir, normal types.Vec3) bool {
	switch m.Kind {
	case Light:
		return false
	case Diffuse:
		return reflectDir.Dot(normal) > diffuseContribThreshold
	case Metal:
		return m.Roughness <= metalRoughnessThreshold || reflectDir.Dot(normal) > diffuseContribThreshold
	default:
		return true
	}
}

// ShadeColor resolves the material's base color at a collision, preferring
// the texture sample when one is bound.
func ShadeColor(m *Material, uv types.Vec2) types.Vec3 {
	if m.Texture != nil {
		return m.Texture.Sample(uv)
	}
	return m.Color
}
