// Package gltfimport converts glTF 2.0 documents (.gltf and .glb) into the
// arena scene representation.
package gltfimport

import (
	"fmt"
	"net/url"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/internal/scene"
)

// Importer reads glTF files from disk.
type Importer struct{}

// Import opens path and converts the document.
func (Importer) Import(path string) (*scene.Scene, error) {
	return Open(path)
}

// Open reads a .gltf or .glb file, including external buffers.
func Open(path string) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %w", path, err)
	}
	sc, err := Convert(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return sc, nil
}

// converter carries the lookup tables built while converting one document.
type converter struct {
	doc *gltf.Document
	sc  *scene.Scene

	// meshPrims maps a glTF mesh index to the raw meshes of its primitives.
	meshPrims [][]int
}

// Convert turns an in-memory document into a Scene. Each triangle
// primitive becomes one raw mesh; nodes keep their glTF order and a
// synthetic root is added when the scene has more than one root node.
// Node hierarchies that are not disjoint trees are rejected.
func Convert(doc *gltf.Document) (*scene.Scene, error) {
	c := &converter{
		doc: doc,
		sc: &scene.Scene{
			Embedded: make(map[string]scene.EmbeddedTexture),
		},
	}

	if err := c.images(); err != nil {
		return nil, err
	}
	c.materials()
	if err := c.meshes(); err != nil {
		return nil, err
	}
	if err := c.nodes(); err != nil {
		return nil, err
	}
	if err := c.sc.Validate(); err != nil {
		return nil, err
	}
	return c.sc, nil
}

func (c *converter) images() error {
	for i, img := range c.doc.Images {
		key := scene.EmbeddedKey(i)
		switch {
		case img.BufferView != nil:
			data, err := c.bufferView(*img.BufferView)
			if err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			c.sc.Embedded[key] = scene.EmbeddedTexture{Key: key, Data: data, FormatHint: img.MimeType}
		case img.IsEmbeddedResource():
			data, err := img.MarshalData()
			if err != nil {
				return fmt.Errorf("image %d data uri: %w", i, err)
			}
			c.sc.Embedded[key] = scene.EmbeddedTexture{Key: key, Data: data, FormatHint: img.MimeType}
		}
	}
	return nil
}

func (c *converter) bufferView(idx int) ([]byte, error) {
	if idx < 0 || idx >= len(c.doc.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view %d", scene.ErrBadIndex, idx)
	}
	bv := c.doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(c.doc.Buffers) {
		return nil, fmt.Errorf("%w: buffer %d", scene.ErrBadIndex, bv.Buffer)
	}
	data := c.doc.Buffers[bv.Buffer].Data
	end := bv.ByteOffset + bv.ByteLength
	if bv.ByteOffset < 0 || end > len(data) {
		return nil, fmt.Errorf("%w: buffer view %d [%d:%d] of %d bytes", scene.ErrBadIndex, idx, bv.ByteOffset, end, len(data))
	}
	return data[bv.ByteOffset:end], nil
}

// texturePath returns the slot path for a glTF texture index: the embedded
// key for images stored in the file, otherwise the relative image URI.
func (c *converter) texturePath(texIdx int) string {
	if texIdx < 0 || texIdx >= len(c.doc.Textures) {
		return ""
	}
	src := c.doc.Textures[texIdx].Source
	if src == nil || *src < 0 || *src >= len(c.doc.Images) {
		return ""
	}
	key := scene.EmbeddedKey(*src)
	if _, ok := c.sc.Embedded[key]; ok {
		return key
	}
	uri := c.doc.Images[*src].URI
	if p, err := url.PathUnescape(uri); err == nil {
		return p
	}
	return uri
}

func (c *converter) materials() {
	c.sc.Materials = make([]scene.RawMaterial, len(c.doc.Materials))
	for i, m := range c.doc.Materials {
		raw := scene.RawMaterial{
			Name:     m.Name,
			Textures: make(map[scene.TextureSlot]string),
		}
		if m.AlphaCutoff != nil && m.AlphaMode == gltf.AlphaMask {
			v := float32(*m.AlphaCutoff)
			raw.AlphaCutoff = &v
		}

		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if f := pbr.BaseColorFactor; f != nil {
				col := [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
				raw.Diffuse = &col
				raw.BaseColor = &col
				if m.AlphaMode == gltf.AlphaBlend {
					a := col[3]
					raw.Transparency = &a
				}
			}
			if pbr.MetallicFactor != nil {
				v := float32(*pbr.MetallicFactor)
				raw.Metallic = &v
			}
			if pbr.RoughnessFactor != nil {
				v := float32(*pbr.RoughnessFactor)
				raw.Roughness = &v
			}
			if t := pbr.BaseColorTexture; t != nil {
				p := c.texturePath(t.Index)
				raw.Textures[scene.SlotDiffuse] = p
				raw.Textures[scene.SlotAlbedo] = p
			}
			if t := pbr.MetallicRoughnessTexture; t != nil {
				p := c.texturePath(t.Index)
				raw.Textures[scene.SlotMetallic] = p
				raw.Textures[scene.SlotRoughness] = p
			}
		}
		if n := m.NormalTexture; n != nil && n.Index != nil {
			raw.Textures[scene.SlotNormalMap] = c.texturePath(*n.Index)
		}
		c.sc.Materials[i] = raw
	}
}

func (c *converter) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(c.doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", scene.ErrBadIndex, idx)
	}
	return c.doc.Accessors[idx], nil
}

func (c *converter) meshes() error {
	c.meshPrims = make([][]int, len(c.doc.Meshes))
	for mi, m := range c.doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				logger.Log.Debug("skipping non-triangle primitive",
					zap.String("mesh", m.Name),
					zap.Int("primitive", pi),
					zap.Uint8("mode", uint8(prim.Mode)),
				)
				continue
			}
			raw, err := c.primitive(m.Name, prim)
			if err != nil {
				return fmt.Errorf("mesh %d (%s) primitive %d: %w", mi, m.Name, pi, err)
			}
			c.meshPrims[mi] = append(c.meshPrims[mi], len(c.sc.Meshes))
			c.sc.Meshes = append(c.sc.Meshes, raw)
		}
	}
	return nil
}

func (c *converter) primitive(name string, prim *gltf.Primitive) (scene.RawMesh, error) {
	raw := scene.RawMesh{Name: name, Material: scene.NoMaterial}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return raw, fmt.Errorf("no POSITION attribute")
	}
	acc, err := c.accessor(posIdx)
	if err != nil {
		return raw, err
	}
	if raw.Positions, err = modeler.ReadPosition(c.doc, acc, nil); err != nil {
		return raw, fmt.Errorf("read positions: %w", err)
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acc, err = c.accessor(idx); err != nil {
			return raw, err
		}
		if raw.Normals, err = modeler.ReadNormal(c.doc, acc, nil); err != nil {
			return raw, fmt.Errorf("read normals: %w", err)
		}
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acc, err = c.accessor(idx); err != nil {
			return raw, err
		}
		if raw.UV0, err = modeler.ReadTextureCoord(c.doc, acc, nil); err != nil {
			return raw, fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if acc, err = c.accessor(*prim.Indices); err != nil {
			return raw, err
		}
		if indices, err = modeler.ReadIndices(c.doc, acc, nil); err != nil {
			return raw, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(raw.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return raw, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	raw.Faces = make([][3]uint32, len(indices)/3)
	for f := range raw.Faces {
		raw.Faces[f] = [3]uint32{indices[3*f], indices[3*f+1], indices[3*f+2]}
	}

	if prim.Material != nil {
		raw.Material = *prim.Material
	}
	return raw, nil
}

// localMatrix returns the node transform; an explicit matrix wins over TRS.
func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i := range m {
			out[i] = float32(m[i])
		}
		return out
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (c *converter) nodes() error {
	roots, name, err := c.roots()
	if err != nil {
		return err
	}

	// Arena indices equal glTF node indices; the synthetic root goes last.
	for i, n := range c.doc.Nodes {
		node := scene.Node{Name: n.Name, Local: localMatrix(n)}
		if n.Mesh != nil {
			if *n.Mesh < 0 || *n.Mesh >= len(c.meshPrims) {
				return fmt.Errorf("%w: node %d mesh %d", scene.ErrBadIndex, i, *n.Mesh)
			}
			node.Meshes = append(node.Meshes, c.meshPrims[*n.Mesh]...)
		}
		for _, child := range n.Children {
			if child < 0 || child >= len(c.doc.Nodes) {
				return fmt.Errorf("%w: node %d child %d", scene.ErrBadIndex, i, child)
			}
			node.Children = append(node.Children, child)
		}
		c.sc.Nodes = append(c.sc.Nodes, node)
	}

	for _, r := range roots {
		if r < 0 || r >= len(c.doc.Nodes) {
			return fmt.Errorf("%w: scene root %d", scene.ErrBadIndex, r)
		}
	}
	if len(roots) == 1 {
		c.sc.Root = roots[0]
		return nil
	}
	c.sc.Root = len(c.sc.Nodes)
	c.sc.Nodes = append(c.sc.Nodes, scene.Node{
		Name:     name,
		Local:    mgl32.Ident4(),
		Children: roots,
	})
	return nil
}

// roots returns the root nodes of the default scene. Documents without
// scenes fall back to every node that is nobody's child.
func (c *converter) roots() ([]int, string, error) {
	if len(c.doc.Nodes) == 0 {
		return nil, "", scene.ErrNoScene
	}
	if len(c.doc.Scenes) > 0 {
		idx := 0
		if c.doc.Scene != nil {
			idx = *c.doc.Scene
		}
		if idx < 0 || idx >= len(c.doc.Scenes) {
			return nil, "", fmt.Errorf("%w: scene %d", scene.ErrBadIndex, idx)
		}
		s := c.doc.Scenes[idx]
		if len(s.Nodes) == 0 {
			return nil, "", scene.ErrNoScene
		}
		name := s.Name
		if name == "" {
			name = "Scene"
		}
		return append([]int(nil), s.Nodes...), name, nil
	}

	isChild := make([]bool, len(c.doc.Nodes))
	for _, n := range c.doc.Nodes {
		for _, child := range n.Children {
			if child >= 0 && child < len(isChild) {
				isChild[child] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	if len(roots) == 0 {
		return nil, "", fmt.Errorf("%w: every node has a parent", scene.ErrCycle)
	}
	return roots, "Scene", nil
}
