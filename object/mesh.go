package object

import (
	"github.com/solstice-render/pathtrace/accel"
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

// Face indexes a mesh's shared vertex/normal/uv arrays. Missing normal or
// uv indices are -1, matching how the original loader flags per-vertex
// attributes that a Wavefront file didn't provide.
type Face struct {
	V           [3]int32
	N           [3]int32
	T           [3]int32
	MaterialIdx int32 // -1 when the mesh has no per-face material override
}

// MeshData is the shared, borrowed geometry backing every Mesh object that
// was loaded from the same file. The scene parser calls Freeze once loading
// is finished, before any Mesh (and its BVH) is built over the data; Freeze
// only sets a flag, and nothing writes the slices afterwards, so concurrent
// workers can share one MeshData without locking.
type MeshData struct {
	Vertices []types.Vec3
	Normals  []types.Vec3
	UVs      []types.Vec2
	Faces    []Face
	frozen   bool
}

func (m *MeshData) Freeze() { m.frozen = true }

func (m *MeshData) faceBounds(faceIdx int) types.Bounds {
	f := m.Faces[faceIdx]
	b := types.EmptyBounds()
	b = b.Union(m.Vertices[f.V[0]])
	b = b.Union(m.Vertices[f.V[1]])
	b = b.Union(m.Vertices[f.V[2]])
	return b
}

const (
	meshBVHCapacity = 16
	meshBVHMaxDepth = 4
)

// Mesh is a triangle-mesh Object: it owns its own fine-grained BVH over
// MeshData's faces, separate from the coarse scene BVH that will contain
// Mesh itself as a single leaf.
type Mesh struct {
	base
	data   *MeshData
	tree   *accel.Tree[int]
	bounds types.Bounds
}

// NewMesh builds the per-mesh octree over faceIndices (normally all faces
// in data, but a scene may instance several Mesh objects with disjoint
// face ranges over one shared MeshData).
func NewMesh(data *MeshData, faceIndices []int, mat *material.Material) *Mesh {
	tree := accel.Build(faceIndices, data.faceBounds, accel.Params{
		Capacity: meshBVHCapacity,
		MaxDepth: meshBVHMaxDepth,
	})
	bounds := types.EmptyBounds()
	for _, idx := range faceIndices {
		bounds = bounds.UnionBounds(data.faceBounds(idx))
	}
	return &Mesh{base: base{mat}, data: data, tree: tree, bounds: bounds}
}

func (m *Mesh) Center() types.Vec3   { return m.bounds.Center() }
func (m *Mesh) Bounds() types.Bounds { return m.bounds }

const rayTriEpsilon = 1e-7

// intersectTriangle implements the Möller-Trumbore algorithm, returning the
// hit distance and the (u, v) barycentric weights of vertices 1 and 2 (with
// vertex 0's weight implicitly 1-u-v).
func intersectTriangle(r types.Ray, v0, v1, v2 types.Vec3) (t, u, v float32, ok bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -rayTriEpsilon && a < rayTriEpsilon {
		return 0, 0, 0, false
	}
	f := 1 / a
	s := r.Origin.Sub(v0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(edge1)
	v = f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	t = f * edge2.Dot(q)
	if t < rayTriEpsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

func interpolateBary3(a, b, c types.Vec3, u, v float32) types.Vec3 {
	return a.Scale(1 - u - v).Add(b.Scale(u)).Add(c.Scale(v))
}

func interpolateBary2(a, b, c types.Vec2, u, v float32) types.Vec2 {
	return a.Scale(1 - u - v).Add(b.Scale(u)).Add(c.Scale(v))
}

func (m *Mesh) Trace(r types.Ray, hit *types.Collision) bool {
	if !m.tree.Enabled() {
		return m.traceLinear(r, hit)
	}

	var bestFace = -1
	var bestU, bestV float32
	bestT := hit.T

	_, found := m.tree.Trace(r, hit.T, func(faceIdx int) (float32, bool) {
		f := m.data.Faces[faceIdx]
		v0, v1, v2 := m.data.Vertices[f.V[0]], m.data.Vertices[f.V[1]], m.data.Vertices[f.V[2]]
		t, u, v, ok := intersectTriangle(r, v0, v1, v2)
		if !ok || t >= bestT {
			return 0, false
		}
		bestFace = faceIdx
		bestU, bestV, bestT = u, v, t
		return t, true
	})
	if !found {
		return false
	}
	return m.fillHit(r, hit, bestFace, bestT, bestU, bestV)
}

// traceLinear is used only when the mesh tree is disabled, which happens when
// faceIndices is empty; it tests every face in data, not a face range.
func (m *Mesh) traceLinear(r types.Ray, hit *types.Collision) bool {
	found := false
	bestFace := -1
	var bestU, bestV, bestT float32
	for idx, f := range m.data.Faces {
		v0, v1, v2 := m.data.Vertices[f.V[0]], m.data.Vertices[f.V[1]], m.data.Vertices[f.V[2]]
		t, u, v, ok := intersectTriangle(r, v0, v1, v2)
		if !ok || t >= hit.T {
			continue
		}
		hit.T = t
		bestFace = idx
		bestU, bestV, bestT = u, v, t
		found = true
	}
	if !found {
		return false
	}
	return m.fillHit(r, hit, bestFace, bestT, bestU, bestV)
}

func (m *Mesh) fillHit(r types.Ray, hit *types.Collision, faceIdx int, t, u, v float32) bool {
	f := m.data.Faces[faceIdx]
	v0, v1, v2 := m.data.Vertices[f.V[0]], m.data.Vertices[f.V[1]], m.data.Vertices[f.V[2]]

	var normal types.Vec3
	if f.N[0] >= 0 && len(m.data.Normals) > 0 {
		n0, n1, n2 := m.data.Normals[f.N[0]], m.data.Normals[f.N[1]], m.data.Normals[f.N[2]]
		normal = interpolateBary3(n0, n1, n2, u, v).Normalize()
	} else {
		normal = v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	}
	if normal.Dot(r.Direction) > 0 {
		normal = normal.Neg()
	}

	var uv types.Vec2
	if f.T[0] >= 0 && len(m.data.UVs) > 0 {
		uv = interpolateBary2(m.data.UVs[f.T[0]], m.data.UVs[f.T[1]], m.data.UVs[f.T[2]], u, v)
	}

	*hit = types.Collision{
		T:        t,
		Point:    interpolateBary3(v0, v1, v2, u, v),
		Normal:   normal,
		UV:       uv,
		Material: m.mat.ID(),
	}
	return true
}
