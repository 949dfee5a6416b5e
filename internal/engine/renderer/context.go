package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gizmo/internal/engine/grid"
	"github.com/Faultbox/gizmo/internal/engine/lighting"
	"github.com/Faultbox/gizmo/internal/engine/shader"
	"github.com/Faultbox/gizmo/internal/engine/shaders"
)

// Frame is the per-frame state every pass reads.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	Light      lighting.PointLight
	Ambient    float32
	Shininess  float32
	PhaseOn    bool
}

// ViewProjection returns projection × view.
func (f *Frame) ViewProjection() mgl32.Mat4 {
	return f.Projection.Mul4(f.View)
}

// Context holds the programs and buffers shared by the render passes.
type Context struct {
	model *shader.Program
	lines *shader.Program
	grid  *grid.Grid

	lineVAO, lineVBO uint32
	lineCap          int
}

// compileFunc builds a named shader program.
type compileFunc func(name, vertexSrc, fragmentSrc string) (*shader.Program, error)

func newContext(gp grid.Params) (*Context, error) {
	return newContextWith(gp, shader.New)
}

// newContextWith compiles every program the passes need. Any failure
// releases the programs built so far and fails the whole context.
func newContextWith(gp grid.Params, compile compileFunc) (*Context, error) {
	gridVS, gridFS := grid.Sources()
	sources := []struct {
		name   string
		vs, fs string
	}{
		{"model", shaders.ModelVertexShader, shaders.ModelFragmentShader},
		{"lines", shaders.LineVertexShader, shaders.LineFragmentShader},
		{"grid", gridVS, gridFS},
	}

	progs := make([]*shader.Program, 0, len(sources))
	for _, src := range sources {
		p, err := compile(src.name, src.vs, src.fs)
		if err != nil {
			for _, built := range progs {
				built.Delete()
			}
			return nil, fmt.Errorf("compiling shaders: %w", err)
		}
		progs = append(progs, p)
	}

	return &Context{
		model: progs[0],
		lines: progs[1],
		grid:  grid.New(gp, progs[2]),
	}, nil
}

// Grid returns the grid pass.
func (c *Context) Grid() *grid.Grid {
	return c.grid
}

// DrawGrid draws the infinite grid for the frame.
func (c *Context) DrawGrid(f *Frame) {
	c.grid.Draw(f.View, f.Projection, f.CameraPos)
}

// Close frees every GL object owned by the context.
func (c *Context) Close() {
	c.grid.Close()
	c.deleteLines()
	c.lines.Delete()
	c.model.Delete()
}
