// Package object implements the analytic primitives and triangle meshes
// that populate a scene, each exposing the same Trace/Bounds/Center
// contract the scene BVH needs.
package object

import (
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

// Object is a traceable scene primitive. Trace only overwrites hit when it
// finds an intersection strictly closer than hit.T, mirroring the original
// engine's ObjectCollision refinement pattern, so callers can fold the
// whole scene through repeated Trace calls with one shared Collision.
type Object interface {
	Trace(r types.Ray, hit *types.Collision) bool
	Bounds() types.Bounds
	Center() types.Vec3
	Material() *material.Material
}

// base holds the one field every concrete primitive needs.
type base struct {
	mat *material.Material
}

func (b base) Material() *material.Material { return b.mat }
