package object

import (
	"github.com/chewxy/math32"
	"github.com/solstice-render/pathtrace/types"
)

// sphereUV maps a unit sphere normal to the standard equirectangular UV.
func sphereUV(n types.Vec3) types.Vec2 {
	return SphereMapUV(n)
}

// SphereMapUV is the equirectangular mapping from a unit direction to UV
// coordinates, exported so the scene package can apply it to escaped camera
// rays when sampling a sky texture.
func SphereMapUV(n types.Vec3) types.Vec2 {
	u := 0.5 + math32.Atan2(n[2], n[0])/(2*math32.Pi)
	v := 0.5 - math32.Asin(clamp(n[1], -1, 1))/math32.Pi
	return types.Vec2{u, v}
}

// planarUV projects point onto the plane perpendicular to the dominant axis
// of normal, used by every flat/quasi-flat primitive (plane, disc, cuboid
// faces).
func planarUV(point, normal types.Vec3) types.Vec2 {
	ax, ay, az := math32.Abs(normal[0]), math32.Abs(normal[1]), math32.Abs(normal[2])
	switch {
	case ax >= ay && ax >= az:
		return types.Vec2{point[1], point[2]}
	case ay >= ax && ay >= az:
		return types.Vec2{point[0], point[2]}
	default:
		return types.Vec2{point[0], point[1]}
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
