// Package mesh flattens an imported node tree into one shared vertex buffer,
// one shared index buffer and a list of submesh ranges into them.
package mesh

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// InvalidMaterial is the material index of a submesh without a material.
const InvalidMaterial uint32 = math.MaxUint32

// VertexStride is the size of one interleaved Vertex in bytes.
const VertexStride = 8 * 4

// Attribute byte offsets inside a Vertex.
const (
	PositionOffset = 0
	UVOffset       = 3 * 4
	NormalOffset   = 5 * 4
)

// DefaultNormal is used for meshes without a normal channel.
var DefaultNormal = [3]float32{0, 1, 0}

// ErrLayoutMismatch is returned when the populated buffers disagree with
// the offsets computed by the counting pass.
var ErrLayoutMismatch = errors.New("mesh: buffer layout mismatch")

// Vertex is the interleaved vertex layout shared by every submesh.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Normal   [3]float32
}

// SubmeshDescriptor addresses one mesh reference inside the shared buffers.
type SubmeshDescriptor struct {
	Name          string
	Node          int // arena index of the referencing node
	Mesh          int // index into the scene's raw meshes
	MaterialIndex uint32
	VertexCount   uint32
	IndexCount    uint32
	BaseVertex    uint32
	BaseIndex     uint32
	World         mgl32.Mat4
}

// Layout is the result of the counting pass.
type Layout struct {
	Submeshes     []SubmeshDescriptor
	TotalVertices int
	TotalIndices  int
}

// Geometry holds the shared buffers. Indices are local to their submesh;
// the draw call applies BaseVertex.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}
