package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/engine/mesh"
	"github.com/Faultbox/gizmo/internal/logger"
)

// ErrEmptyGeometry is returned when uploading geometry without vertices.
var ErrEmptyGeometry = errors.New("renderer: empty geometry")

// GPUMesh is the flattened scene on the GPU: one VAO over one vertex
// buffer and one index buffer.
type GPUMesh struct {
	VAO, VBO, EBO uint32
	Vertices      int
	Indices       int
}

// Upload copies the shared buffers to the GPU and records the vertex layout.
func Upload(g *mesh.Geometry) (*GPUMesh, error) {
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return nil, ErrEmptyGeometry
	}

	m := &GPUMesh{Vertices: len(g.Vertices), Indices: len(g.Indices)}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*mesh.VertexStride, gl.Ptr(&g.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(&g.Indices[0]), gl.STATIC_DRAW)

	// Attribute locations match model.vert.
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.VertexStride, mesh.PositionOffset)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, mesh.VertexStride, mesh.UVOffset)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, mesh.VertexStride, mesh.NormalOffset)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Named("renderer").Debug("mesh uploaded",
		zap.Uint32("vao", m.VAO),
		zap.Int("vertices", m.Vertices),
		zap.Int("indices", m.Indices),
	)
	return m, nil
}

// Delete frees the GL buffers. Safe to call on nil.
func (m *GPUMesh) Delete() {
	if m == nil {
		return
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
	*m = GPUMesh{}
}

// drawSubmesh issues one base-vertex draw for d. Indices in the buffer
// are local to their submesh.
func drawSubmesh(d *mesh.SubmeshDescriptor) {
	gl.DrawElementsBaseVertex(
		gl.TRIANGLES,
		int32(d.IndexCount),
		gl.UNSIGNED_INT,
		unsafe.Pointer(uintptr(d.BaseIndex)*4),
		int32(d.BaseVertex),
	)
}
