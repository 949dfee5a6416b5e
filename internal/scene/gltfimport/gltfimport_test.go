package gltfimport

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/gizmo/internal/scene"
)

// twoNodeDoc builds a root with a triangle and a child translated by (1,0,0)
// holding a quad.
func twoNodeDoc() *gltf.Document {
	doc := gltf.NewDocument()

	triPos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	triIdx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	quadPos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	quadNrm := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	quadIdx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 2, 3, 0})

	doc.Meshes = []*gltf.Mesh{
		{Name: "tri", Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: triPos},
			Indices:    gltf.Index(triIdx),
		}}},
		{Name: "quad", Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: quadPos, gltf.NORMAL: quadNrm},
			Indices:    gltf.Index(quadIdx),
			Material:   gltf.Index(0),
		}}},
	}
	doc.Materials = []*gltf.Material{{Name: "paint"}}
	doc.Nodes = []*gltf.Node{
		{Name: "root", Mesh: gltf.Index(0), Children: []int{1}},
		{Name: "child", Mesh: gltf.Index(1), Translation: [3]float64{1, 0, 0}},
	}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestConvertTwoNodes(t *testing.T) {
	sc, err := Convert(twoNodeDoc())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if err := sc.Validate(); err != nil {
		t.Fatalf("converted scene is invalid: %v", err)
	}

	if len(sc.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(sc.Meshes))
	}
	if got := sc.Meshes[0].VertexCount(); got != 3 {
		t.Errorf("tri: expected 3 vertices, got %d", got)
	}
	if got := sc.Meshes[1].IndexCount(); got != 6 {
		t.Errorf("quad: expected 6 indices, got %d", got)
	}
	if len(sc.Meshes[0].Normals) != 0 {
		t.Error("tri has no normals in the file")
	}
	if sc.Meshes[0].Material != scene.NoMaterial {
		t.Errorf("tri: expected no material, got %d", sc.Meshes[0].Material)
	}
	if sc.Meshes[1].Material != 0 {
		t.Errorf("quad: expected material 0, got %d", sc.Meshes[1].Material)
	}

	root := sc.Nodes[sc.Root]
	if root.Name != "root" {
		t.Fatalf("expected single root to be used directly, got %q", root.Name)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	child := sc.Nodes[root.Children[0]]
	if !child.Local.ApproxEqual(mgl32.Translate3D(1, 0, 0)) {
		t.Errorf("child transform = %v", child.Local)
	}
	if !root.Local.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("root transform = %v", root.Local)
	}
}

func TestConvertSyntheticRoot(t *testing.T) {
	doc := twoNodeDoc()
	doc.Nodes[0].Children = nil
	doc.Scenes[0].Nodes = []int{0, 1}

	sc, err := Convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if sc.Root != 2 {
		t.Fatalf("expected synthetic root at 2, got %d", sc.Root)
	}
	root := sc.Nodes[sc.Root]
	if len(root.Children) != 2 || root.Children[0] != 0 || root.Children[1] != 1 {
		t.Errorf("unexpected root children %v", root.Children)
	}
}

func TestConvertNoNodes(t *testing.T) {
	doc := gltf.NewDocument()
	if _, err := Convert(doc); !errors.Is(err, scene.ErrNoScene) {
		t.Errorf("expected ErrNoScene, got %v", err)
	}
}

func TestLocalMatrixTRS(t *testing.T) {
	n := &gltf.Node{
		Translation: [3]float64{0, 2, 0},
		Scale:       [3]float64{2, 2, 2},
		Rotation:    [4]float64{0, 0, 0, 1},
	}
	got := localMatrix(n)
	want := mgl32.Translate3D(0, 2, 0).Mul4(mgl32.Scale3D(2, 2, 2))
	if !got.ApproxEqual(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestConvertMaterialTextures(t *testing.T) {
	doc := twoNodeDoc()

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	doc.Buffers = append(doc.Buffers, &gltf.Buffer{ByteLength: len(png), Data: png})
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: len(doc.Buffers) - 1, ByteLength: len(png)})
	doc.Images = []*gltf.Image{
		{MimeType: "image/png", BufferView: gltf.Index(len(doc.BufferViews) - 1)},
		{URI: "textures/metal%20rough.png"},
	}
	doc.Textures = []*gltf.Texture{
		{Source: gltf.Index(0)},
		{Source: gltf.Index(1)},
	}
	doc.Materials[0].PBRMetallicRoughness = &gltf.PBRMetallicRoughness{
		BaseColorFactor:          &[4]float64{1, 0.5, 0.25, 1},
		BaseColorTexture:         &gltf.TextureInfo{Index: 0},
		MetallicRoughnessTexture: &gltf.TextureInfo{Index: 1},
	}

	sc, err := Convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	m := sc.Materials[0]
	if p, _ := m.TexturePath(scene.SlotAlbedo); p != "*0" {
		t.Errorf("albedo path = %q, want *0", p)
	}
	if p, _ := m.TexturePath(scene.SlotDiffuse); p != "*0" {
		t.Errorf("diffuse path = %q, want *0", p)
	}
	if p, _ := m.TexturePath(scene.SlotRoughness); p != "textures/metal rough.png" {
		t.Errorf("roughness path = %q", p)
	}
	if _, ok := m.TexturePath(scene.SlotSpecularExponent); ok {
		t.Error("glTF has no specular exponent texture")
	}
	if m.Diffuse == nil || m.Diffuse[1] != 0.5 {
		t.Errorf("diffuse color = %v", m.Diffuse)
	}

	emb, ok := sc.EmbeddedTexture("*0")
	if !ok {
		t.Fatal("embedded image missing")
	}
	if len(emb.Data) != len(png) || emb.FormatHint != "image/png" {
		t.Errorf("unexpected embedded texture %+v", emb)
	}
	if _, ok := sc.EmbeddedTexture("*1"); ok {
		t.Error("external image must not be embedded")
	}
}

func TestConvertRejectsSharedNode(t *testing.T) {
	doc := twoNodeDoc()
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "second parent", Children: []int{1}})
	doc.Nodes[0].Children = []int{1, 2}

	if _, err := Convert(doc); !errors.Is(err, scene.ErrSharedNode) {
		t.Errorf("expected ErrSharedNode, got %v", err)
	}
}
