package material

import "github.com/solstice-render/pathtrace/types"

// Texture is a decoded image held as a flat float32 RGB buffer, addressed by
// normalized UV with nearest-neighbor lookup and wraparound, mirroring the
// teacher's Rgba32F in-memory representation but dropping the alpha channel
// and the opencl-friendly byte packing it needed (this renderer runs on the
// CPU and stores colors as types.Vec3 throughout).
type Texture struct {
	Width, Height uint32
	Data          []types.Vec3 // row-major, origin top-left
}

// Sample looks up the texel nearest to uv, wrapping both axes.
func (t *Texture) Sample(uv types.Vec2) types.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return types.Vec3{}
	}
	u := wrap01(uv[0])
	v := wrap01(uv[1])
	x := int(u * float32(t.Width))
	y := int(v * float32(t.Height))
	if x >= int(t.Width) {
		x = int(t.Width) - 1
	}
	if y >= int(t.Height) {
		y = int(t.Height) - 1
	}
	return t.Data[y*int(t.Width)+x]
}

func wrap01(v float32) float32 {
	v -= float32(int(v))
	if v < 0 {
		v += 1
	}
	return v
}
