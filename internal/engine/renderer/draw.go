package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gizmo/internal/engine/lighting"
	"github.com/Faultbox/gizmo/internal/engine/material"
	"github.com/Faultbox/gizmo/internal/engine/mesh"
)

// SceneOptions controls how DrawScene shades the model.
type SceneOptions struct {
	Wireframe bool
	Highlight lighting.Highlight
}

// DrawScene draws every submesh of the uploaded model with one base-vertex
// draw call each. GL state it changes is restored before it returns.
func (c *Context) DrawScene(f *Frame, gm *GPUMesh, layout *mesh.Layout, mats []material.Material, opts SceneOptions) {
	if gm == nil || layout == nil {
		return
	}

	p := c.model
	p.Use()
	p.SetMat4("gView", f.View)
	p.SetMat4("gProjection", f.Projection)
	p.SetVec3("gViewPos", f.CameraPos)
	p.SetVec3("gLightPos", f.Light.Position)
	p.SetVec3("gLightColor", f.Light.Color)
	p.SetFloat("gConstant", f.Light.Attenuation.Constant)
	p.SetFloat("gLinear", f.Light.Attenuation.Linear)
	p.SetFloat("gQuadratic", f.Light.Attenuation.Quadratic)
	p.SetFloat("gAmbient", f.Ambient)
	p.SetFloat("gShininess", f.Shininess)
	p.SetVec3("gHighlightColor", opts.Highlight.Color)
	p.SetInt("gDiffuseMap", 0)

	if opts.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.BindVertexArray(gm.VAO)
	gl.ActiveTexture(gl.TEXTURE0)
	for i := range layout.Submeshes {
		d := &layout.Submeshes[i]
		if d.IndexCount == 0 {
			continue
		}
		s := surfaceFor(d, mats, opts.Highlight, f.PhaseOn)

		p.SetMat4("gWorld", d.World)
		p.SetVec3("gObjectColor", s.Color)
		p.SetFloat("gOpacity", s.Opacity)
		p.SetFloat("gAlphaTest", s.AlphaTest)
		p.SetBool("gHighlight", s.Highlighted)
		p.SetBool("gHasDiffuseMap", s.Map != nil)
		if s.Map != nil {
			gl.BindTexture(s.Map.Target, s.Map.Handle)
		} else {
			gl.BindTexture(gl.TEXTURE_2D, 0)
		}

		blend := s.Opacity < 1
		if blend {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		}
		drawSubmesh(d)
		if blend {
			gl.Disable(gl.BLEND)
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	if opts.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.UseProgram(0)
}
