// Package scene holds the imported scene graph in arena form: a flat node
// array linked by indices, plus the raw mesh, material and embedded texture
// tables an importer produces.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NoMaterial marks a raw mesh without a material.
const NoMaterial = -1

var (
	// ErrNoScene is returned when a file yields no usable node tree.
	ErrNoScene = errors.New("scene: no scene")
	// ErrBadIndex is returned when a node, mesh or face refers outside its table.
	ErrBadIndex = errors.New("scene: index out of range")
	// ErrCycle is returned when a node is its own ancestor.
	ErrCycle = errors.New("scene: node cycle")
	// ErrSharedNode is returned when a node is reached through more than
	// one parent, or listed twice by the same parent.
	ErrSharedNode = errors.New("scene: node has more than one parent")
)

// TextureSlot identifies one texture binding of a material.
type TextureSlot int

const (
	SlotDiffuse TextureSlot = iota
	SlotSpecularExponent
	SlotAlbedo
	SlotMetallic
	SlotRoughness
	SlotNormalMap

	// SlotCount is the number of texture slots.
	SlotCount
)

var slotNames = [SlotCount]string{
	SlotDiffuse:          "diffuse",
	SlotSpecularExponent: "specular-exponent",
	SlotAlbedo:           "albedo",
	SlotMetallic:         "metallic",
	SlotRoughness:        "roughness",
	SlotNormalMap:        "normal-map",
}

func (s TextureSlot) String() string {
	if s < 0 || s >= SlotCount {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// Node is one entry of the node tree.
type Node struct {
	Name     string
	Local    mgl32.Mat4
	Meshes   []int // indices into Scene.Meshes, drawn in this order
	Children []int // indices into Scene.Nodes
}

// RawMesh is triangle geometry as delivered by the importer.
// An empty Normals or UV0 slice means the channel is absent.
type RawMesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	UV0       [][2]float32
	Faces     [][3]uint32
	Material  int
}

// VertexCount returns the number of vertices.
func (m *RawMesh) VertexCount() int { return len(m.Positions) }

// IndexCount returns three indices per face.
func (m *RawMesh) IndexCount() int { return 3 * len(m.Faces) }

// RawMaterial holds material properties as found in the source file.
// Nil fields were not present.
type RawMaterial struct {
	Name         string
	Ambient      *[4]float32
	Diffuse      *[4]float32
	Specular     *[4]float32
	Transparency *float32
	AlphaCutoff  *float32
	Roughness    *float32
	Metallic     *float32
	BaseColor    *[4]float32
	Textures     map[TextureSlot]string
}

// TexturePath returns the path assigned to a slot, if any.
func (m *RawMaterial) TexturePath(slot TextureSlot) (string, bool) {
	p, ok := m.Textures[slot]
	return p, ok && p != ""
}

// EmbeddedTexture is encoded image data stored inside the model file.
type EmbeddedTexture struct {
	Key        string
	Data       []byte
	FormatHint string
}

// EmbeddedKey returns the lookup key used for the n-th embedded image.
func EmbeddedKey(n int) string {
	return fmt.Sprintf("*%d", n)
}

// Scene is the importer's output for one load.
type Scene struct {
	Root      int
	Nodes     []Node
	Meshes    []RawMesh
	Materials []RawMaterial
	Embedded  map[string]EmbeddedTexture
}

// EmbeddedTexture returns the embedded texture stored under key.
func (s *Scene) EmbeddedTexture(key string) (EmbeddedTexture, bool) {
	t, ok := s.Embedded[key]
	return t, ok
}

// Validate checks every index of the scene against its table and rejects
// node cycles. The nodes reachable from Root must form a tree: a node reached
// through two parents is rejected, since traversal would visit it once per path.
func (s *Scene) Validate() error {
	if len(s.Nodes) == 0 {
		return ErrNoScene
	}
	if s.Root < 0 || s.Root >= len(s.Nodes) {
		return fmt.Errorf("%w: root %d of %d nodes", ErrBadIndex, s.Root, len(s.Nodes))
	}

	for i := range s.Nodes {
		n := &s.Nodes[i]
		for _, c := range n.Children {
			if c < 0 || c >= len(s.Nodes) {
				return fmt.Errorf("%w: node %q child %d", ErrBadIndex, n.Name, c)
			}
		}
		for _, m := range n.Meshes {
			if m < 0 || m >= len(s.Meshes) {
				return fmt.Errorf("%w: node %q mesh %d", ErrBadIndex, n.Name, m)
			}
		}
	}

	for i := range s.Meshes {
		if err := s.validateMesh(i); err != nil {
			return err
		}
	}

	const (
		unvisited = iota
		onPath
		done
	)
	state := make([]uint8, len(s.Nodes))
	var walk func(int) error
	walk = func(n int) error {
		switch state[n] {
		case onPath:
			return fmt.Errorf("%w: at node %q", ErrCycle, s.Nodes[n].Name)
		case done:
			return fmt.Errorf("%w: node %q", ErrSharedNode, s.Nodes[n].Name)
		}
		state[n] = onPath
		for _, c := range s.Nodes[n].Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		state[n] = done
		return nil
	}
	return walk(s.Root)
}

func (s *Scene) validateMesh(i int) error {
	m := &s.Meshes[i]
	n := len(m.Positions)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("%w: mesh %q has %d normals for %d positions", ErrBadIndex, m.Name, len(m.Normals), n)
	}
	if len(m.UV0) != 0 && len(m.UV0) != n {
		return fmt.Errorf("%w: mesh %q has %d uvs for %d positions", ErrBadIndex, m.Name, len(m.UV0), n)
	}
	if m.Material != NoMaterial && (m.Material < 0 || m.Material >= len(s.Materials)) {
		return fmt.Errorf("%w: mesh %q material %d", ErrBadIndex, m.Name, m.Material)
	}
	for f, face := range m.Faces {
		for _, idx := range face {
			if int(idx) >= n {
				return fmt.Errorf("%w: mesh %q face %d index %d", ErrBadIndex, m.Name, f, idx)
			}
		}
	}
	return nil
}

// Importer parses a model file into a Scene.
type Importer interface {
	Import(path string) (*Scene, error)
}

// ImporterFunc adapts a function to the Importer interface.
type ImporterFunc func(path string) (*Scene, error)

// Import calls f(path).
func (f ImporterFunc) Import(path string) (*Scene, error) { return f(path) }
