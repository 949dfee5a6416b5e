package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawLines draws world-space line segments, [x, y, z] per vertex.
// The line buffer grows as needed and is reused across frames.
func (c *Context) DrawLines(f *Frame, vertices []float32, color mgl32.Vec3) {
	if len(vertices) < 6 {
		return
	}
	if c.lineVAO == 0 {
		gl.GenVertexArrays(1, &c.lineVAO)
		gl.GenBuffers(1, &c.lineVBO)
		gl.BindVertexArray(c.lineVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.lineVBO)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)
	} else {
		gl.BindVertexArray(c.lineVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.lineVBO)
	}

	size := len(vertices) * 4
	if size > c.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(&vertices[0]), gl.DYNAMIC_DRAW)
		c.lineCap = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(&vertices[0]))
	}

	c.lines.Use()
	c.lines.SetMat4("gMVP", f.ViewProjection())
	c.lines.SetVec3("gLineColor", color)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (c *Context) deleteLines() {
	if c.lineVBO != 0 {
		gl.DeleteBuffers(1, &c.lineVBO)
		c.lineVBO = 0
	}
	if c.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &c.lineVAO)
		c.lineVAO = 0
	}
	c.lineCap = 0
}
