package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func triangle(name string) RawMesh {
	return RawMesh{
		Name:      name,
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:     [][3]uint32{{0, 1, 2}},
		Material:  NoMaterial,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  error
	}{
		{
			name:  "empty",
			scene: Scene{},
			want:  ErrNoScene,
		},
		{
			name: "valid",
			scene: Scene{
				Nodes:  []Node{{Name: "root", Local: mgl32.Ident4(), Meshes: []int{0}}},
				Meshes: []RawMesh{triangle("tri")},
			},
		},
		{
			name: "bad root",
			scene: Scene{
				Root:  3,
				Nodes: []Node{{Name: "root", Local: mgl32.Ident4()}},
			},
			want: ErrBadIndex,
		},
		{
			name: "bad child",
			scene: Scene{
				Nodes: []Node{{Name: "root", Local: mgl32.Ident4(), Children: []int{7}}},
			},
			want: ErrBadIndex,
		},
		{
			name: "bad mesh ref",
			scene: Scene{
				Nodes: []Node{{Name: "root", Local: mgl32.Ident4(), Meshes: []int{1}}},
				Meshes: []RawMesh{triangle("tri")},
			},
			want: ErrBadIndex,
		},
		{
			name: "face out of range",
			scene: Scene{
				Nodes: []Node{{Name: "root", Local: mgl32.Ident4(), Meshes: []int{0}}},
				Meshes: []RawMesh{{
					Name:      "broken",
					Positions: [][3]float32{{0, 0, 0}},
					Faces:     [][3]uint32{{0, 0, 5}},
					Material:  NoMaterial,
				}},
			},
			want: ErrBadIndex,
		},
		{
			name: "normal count mismatch",
			scene: Scene{
				Nodes: []Node{{Name: "root", Local: mgl32.Ident4(), Meshes: []int{0}}},
				Meshes: []RawMesh{{
					Name:      "tri",
					Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
					Normals:   [][3]float32{{0, 1, 0}},
					Faces:     [][3]uint32{{0, 1, 2}},
					Material:  NoMaterial,
				}},
			},
			want: ErrBadIndex,
		},
		{
			name: "material out of range",
			scene: Scene{
				Nodes: []Node{{Name: "root", Local: mgl32.Ident4(), Meshes: []int{0}}},
				Meshes: []RawMesh{func() RawMesh {
					m := triangle("tri")
					m.Material = 2
					return m
				}()},
			},
			want: ErrBadIndex,
		},
		{
			name: "cycle",
			scene: Scene{
				Nodes: []Node{
					{Name: "a", Local: mgl32.Ident4(), Children: []int{1}},
					{Name: "b", Local: mgl32.Ident4(), Children: []int{0}},
				},
			},
			want: ErrCycle,
		},
		{
			name: "shared child",
			scene: Scene{
				Nodes: []Node{
					{Name: "root", Local: mgl32.Ident4(), Children: []int{1, 2}},
					{Name: "left", Local: mgl32.Ident4(), Children: []int{3}},
					{Name: "right", Local: mgl32.Ident4(), Children: []int{3}},
					{Name: "leaf", Local: mgl32.Ident4()},
				},
			},
			want: ErrSharedNode,
		},
		{
			name: "child listed twice",
			scene: Scene{
				Nodes: []Node{
					{Name: "root", Local: mgl32.Ident4(), Children: []int{1, 1}},
					{Name: "leaf", Local: mgl32.Ident4()},
				},
			},
			want: ErrSharedNode,
		},
		{
			name: "unreachable node may point anywhere",
			scene: Scene{
				Nodes: []Node{
					{Name: "root", Local: mgl32.Ident4(), Children: []int{1}},
					{Name: "leaf", Local: mgl32.Ident4()},
					{Name: "orphan", Local: mgl32.Ident4(), Children: []int{1}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTexturePath(t *testing.T) {
	m := RawMaterial{Textures: map[TextureSlot]string{
		SlotAlbedo:  "*0",
		SlotDiffuse: "",
	}}

	if _, ok := m.TexturePath(SlotDiffuse); ok {
		t.Error("empty path should count as unset")
	}
	if _, ok := m.TexturePath(SlotRoughness); ok {
		t.Error("missing slot should be unset")
	}
	if p, ok := m.TexturePath(SlotAlbedo); !ok || p != "*0" {
		t.Errorf("expected *0, got %q (%v)", p, ok)
	}
}

func TestSlotString(t *testing.T) {
	if SlotSpecularExponent.String() != "specular-exponent" {
		t.Errorf("unexpected name %q", SlotSpecularExponent.String())
	}
	if TextureSlot(42).String() != "slot(42)" {
		t.Errorf("unexpected name %q", TextureSlot(42).String())
	}
	if EmbeddedKey(3) != "*3" {
		t.Errorf("unexpected key %q", EmbeddedKey(3))
	}
}
