package rng

import "github.com/solstice-render/pathtrace/types"

// tableSize is the number of precomputed unit-sphere directions used for
// cone-biased reflection sampling. Kept small enough to build cheaply at
// process start and large enough that rejection sampling against it does not
// visibly correlate samples across pixels.
const tableSize = 1 << 15 // 32768

// ConeTable is a precomputed table of uniformly distributed unit-sphere
// directions, consulted by ConeTable.ConeSample to avoid a rejection loop with
// trig calls on every material bounce.
type ConeTable struct {
	dirs []types.Vec3
}

// NewConeTable builds the table once at startup; every render worker shares
// the same immutable table (it is read-only after construction).
func NewConeTable(seed int64) *ConeTable {
	src := New(seed)
	dirs := make([]types.Vec3, tableSize)
	for i := range dirs {
		dirs[i] = src.UnitVector()
	}
	return &ConeTable{dirs: dirs}
}

// maxConeAttempts bounds ConeSample's rejection loop.
const maxConeAttempts = 1024

// ConeSample draws a random direction whose cosine with axis is at least
// halfAngleCos, by rejection sampling entries out of the precomputed table:
// repeatedly pick a random table entry until one falls inside the cone. A
// cone too narrow to hold any table entry (a half-angle at or near zero)
// would reject every draw, so after maxConeAttempts rejections ConeSample
// returns axis itself. axis must be unit length. This matches the original's
// table-driven reflection sampler rather than an analytic cosine-lobe
// formula, so that Diffuse/Metal/Ceramic/Glow share one biasing mechanism
// regardless of lobe shape.
func (t *ConeTable) ConeSample(src *Source, axis types.Vec3, halfAngleCos float32) types.Vec3 {
	for attempt := 0; attempt < maxConeAttempts; attempt++ {
		idx := int(src.Float() * float32(tableSize))
		if idx >= tableSize {
			idx = tableSize - 1
		}
		d := t.dirs[idx]
		if d.Dot(axis) >= halfAngleCos {
			return d
		}
	}
	return axis
}
