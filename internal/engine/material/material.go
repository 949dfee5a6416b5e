// Package material resolves raw materials into renderable ones: colors,
// PBR scalars and textures loaded from the model file or from disk.
package material

import (
	"github.com/Faultbox/gizmo/internal/engine/texture"
	"github.com/Faultbox/gizmo/internal/scene"
)

// Material is a resolved material. Slots of the materials from one Resolve
// call may share a texture; release them together with ReleaseAll.
type Material struct {
	Name string

	Ambient  [4]float32
	Diffuse  [4]float32
	Specular [4]float32

	Transparency float32
	AlphaTest    float32

	Textures [scene.SlotCount]*texture.Texture

	// PBR
	Roughness float32
	Metal     bool
	Color     [3]float32
}

// Texture returns the texture bound to slot, or nil.
func (m *Material) Texture(slot scene.TextureSlot) *texture.Texture {
	if slot < 0 || slot >= scene.SlotCount {
		return nil
	}
	return m.Textures[slot]
}

// Release frees every texture of m through l and clears the slots. A
// texture bound to several slots is freed once. Calling it twice is a no-op.
func (m *Material) Release(l TextureLoader) {
	m.release(l, make(map[*texture.Texture]bool))
}

func (m *Material) release(l TextureLoader, freed map[*texture.Texture]bool) {
	for i, t := range m.Textures {
		if t == nil {
			continue
		}
		if !freed[t] {
			freed[t] = true
			l.Release(t)
		}
		m.Textures[i] = nil
	}
}

// ReleaseAll releases the textures of every material, each one once.
func ReleaseAll(mats []Material, l TextureLoader) {
	freed := make(map[*texture.Texture]bool)
	for i := range mats {
		mats[i].release(l, freed)
	}
}

// fromRaw resolves colors and scalars with their defaults: ambient opaque
// white, diffuse and specular zero, transparency 1, alpha test 0.
func fromRaw(raw *scene.RawMaterial) Material {
	m := Material{
		Name:         raw.Name,
		Ambient:      [4]float32{1, 1, 1, 1},
		Transparency: 1,
	}
	if raw.Ambient != nil {
		m.Ambient = *raw.Ambient
	}
	if raw.Diffuse != nil {
		m.Diffuse = *raw.Diffuse
	}
	if raw.Specular != nil {
		m.Specular = *raw.Specular
	}
	if raw.Transparency != nil {
		m.Transparency = *raw.Transparency
	}
	if raw.AlphaCutoff != nil {
		m.AlphaTest = *raw.AlphaCutoff
	}
	if raw.Roughness != nil {
		m.Roughness = *raw.Roughness
	}
	if raw.Metallic != nil {
		m.Metal = *raw.Metallic > 0.5
	}
	if raw.BaseColor != nil {
		m.Color = [3]float32{raw.BaseColor[0], raw.BaseColor[1], raw.BaseColor[2]}
	}
	return m
}
