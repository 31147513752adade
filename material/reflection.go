package material

import (
	"github.com/chewxy/math32"
	"github.com/solstice-render/pathtrace/rng"
	"github.com/solstice-render/pathtrace/types"
)

// Hardcoded nominal indices of refraction for Glass and Liquid. Scenes can
// parse an Index value (see Material.Index) but, per the original engine,
// neither variant actually consults it -- both bounce off a fixed physical
// constant instead. Preserved here as a known, documented gap rather than
// silently wired up, since doing so would change scene behavior the original
// author never intended.
const (
	glassIndex  = 1.15
	liquidIndex = 1.33
)

// coneCosHalf converts a cone half-angle in radians to the cosine threshold
// ConeTable.ConeSample expects. angle is the half-angle passed down from a
// material's roughness/shininess term: the largest angle off axis a sampled
// direction may fall within.
func coneCosHalf(angle float32) float32 {
	return math32.Cos(angle)
}

// Reflection samples the next ray direction leaving a collision, for
// materials whose WillUseIndirectLight is true. incoming points toward the
// surface (camera-to-hit convention), normal is oriented against incoming.
func Reflection(m *Material, normal, incoming types.Vec3, src *rng.Source, cones *rng.ConeTable) types.Vec3 {
	switch m.Kind {
	case Diffuse:
		return cones.ConeSample(src, normal, coneCosHalf(math32.Pi))

	case Metal:
		reflected := incoming.Reflect(normal)
		cosHalf := coneCosHalf(math32.Pi * m.Roughness)
		d := cones.ConeSample(src, reflected, cosHalf)
		if d.Dot(normal) <= 0 {
			return reflected
		}
		return d

	case Mirror:
		return incoming.Reflect(normal)

	case Ceramic, Glow:
		if src.Float() < 0.1 {
			return incoming.Reflect(normal)
		}
		shininess := 1 - m.Roughness
		return cones.ConeSample(src, normal, coneCosHalf(math32.Pi*(1-shininess)))

	case Glass:
		n := normal
		eta := float32(1.0 / glassIndex)
		cosI := -incoming.Dot(n)
		if cosI < 0 {
			// exiting the medium: flip normal and invert the ratio.
			n = n.Neg()
			eta = glassIndex
		}
		refracted, ok := incoming.Refract(n, eta)
		if !ok {
			return incoming.Reflect(normal)
		}
		return refracted

	case Liquid:
		if src.Float() < 0.4 {
			return incoming.Reflect(normal)
		}
		refracted, ok := incoming.Refract(normal, 1.0/liquidIndex)
		if !ok {
			return incoming.Reflect(normal)
		}
		return refracted

	case Fog:
		return incoming

	default: // Light: terminated before Reflection is consulted.
		return normal
	}
}
