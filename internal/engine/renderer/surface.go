package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gizmo/internal/engine/lighting"
	"github.com/Faultbox/gizmo/internal/engine/material"
	"github.com/Faultbox/gizmo/internal/engine/mesh"
	"github.com/Faultbox/gizmo/internal/engine/texture"
	"github.com/Faultbox/gizmo/internal/scene"
)

// FallbackColor shades submeshes without a usable material color.
var FallbackColor = mgl32.Vec3{0.8, 0.8, 0.8}

// surface is the material state uploaded for one submesh.
type surface struct {
	Color       mgl32.Vec3
	Opacity     float32
	AlphaTest   float32
	Map         *texture.Texture
	Highlighted bool
}

// surfaceFor picks the shading inputs for d. The object color is the
// diffuse color, then the PBR base color, then white under a texture,
// then FallbackColor. The diffuse map wins over the albedo map.
func surfaceFor(d *mesh.SubmeshDescriptor, mats []material.Material, hl lighting.Highlight, phaseOn bool) surface {
	s := surface{Color: FallbackColor, Opacity: 1}

	if d.MaterialIndex != mesh.InvalidMaterial && int(d.MaterialIndex) < len(mats) {
		m := &mats[d.MaterialIndex]
		s.Map = m.Texture(scene.SlotDiffuse)
		if s.Map == nil {
			s.Map = m.Texture(scene.SlotAlbedo)
		}

		diffuse := mgl32.Vec3{m.Diffuse[0], m.Diffuse[1], m.Diffuse[2]}
		base := mgl32.Vec3(m.Color)
		switch {
		case diffuse != (mgl32.Vec3{}):
			s.Color = diffuse
		case base != (mgl32.Vec3{}):
			s.Color = base
		case s.Map != nil:
			s.Color = mgl32.Vec3{1, 1, 1}
		}
		s.Opacity = m.Transparency
		s.AlphaTest = m.AlphaTest
	}

	if c, ok := hl.ColorFor(d.Name, phaseOn); ok {
		s.Color = c
		s.Highlighted = true
	}
	return s
}
