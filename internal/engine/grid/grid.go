// Package grid draws the infinite reference grid on the ground plane.
package grid

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gizmo/internal/engine/shader"
	"github.com/Faultbox/gizmo/internal/engine/shaders"
)

// VertexCount is the number of vertices generated by the grid vertex shader.
const VertexCount = 6

// Params controls grid spacing and colors.
type Params struct {
	Size             float32
	CellSize         float32
	ThinColor        mgl32.Vec4
	ThickColor       mgl32.Vec4
	MinPixelsBetween float32
}

// DefaultParams returns the standard grid.
func DefaultParams() Params {
	return Params{
		Size:             10,
		CellSize:         0.1,
		ThinColor:        mgl32.Vec4{0.5, 0.5, 0.5, 1},
		ThickColor:       mgl32.Vec4{0, 0, 0, 1},
		MinPixelsBetween: 2,
	}
}

// Grid owns the grid program and the empty VAO the draw call needs.
type Grid struct {
	Params Params

	program *shader.Program
	vao     uint32
}

// Sources returns the embedded grid shader sources.
func Sources() (vertex, fragment string) {
	return shaders.GridVertexShader, shaders.GridFragmentShader
}

// New creates a grid drawn with prog, a program built from Sources.
// The VAO is created on first Draw.
func New(p Params, prog *shader.Program) *Grid {
	return &Grid{Params: p, program: prog}
}

// Draw renders the grid around the camera. Blending is enabled only for
// the duration of the call.
func (g *Grid) Draw(view, projection mgl32.Mat4, cameraPos mgl32.Vec3) {
	if g.vao == 0 {
		gl.GenVertexArrays(1, &g.vao)
	}

	p := g.program
	p.Use()
	p.SetMat4("gVP", projection.Mul4(view))
	p.SetFloat("gGridSize", g.Params.Size)
	p.SetFloat("gGridCellSize", g.Params.CellSize)
	p.SetVec3("gCameraWorldPos", cameraPos)
	p.SetVec4("gGridColorThin", g.Params.ThinColor)
	p.SetVec4("gGridColorThick", g.Params.ThickColor)
	p.SetFloat("gGridMinPixelsBetweenCells", g.Params.MinPixelsBetween)

	gl.BindVertexArray(g.vao)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, VertexCount)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Close frees GL resources.
func (g *Grid) Close() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.program != nil {
		g.program.Delete()
		g.program = nil
	}
}
