package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gizmo/internal/scene"
)

// Builder receives the flattened geometry. ReserveSpace is called once with
// the totals of the counting pass, then PopulateBuffers once per mesh
// reference in traversal order.
type Builder interface {
	ReserveSpace(vertices, indices int)
	PopulateBuffers(desc SubmeshDescriptor, raw *scene.RawMesh) error
}

// visitFunc is called for every mesh reference met during traversal.
type visitFunc func(node, mesh int, world mgl32.Mat4) error

// walk visits the tree depth-first, pre-order, composing parent × local.
// The scene must have passed Validate.
func walk(sc *scene.Scene, node int, parent mgl32.Mat4, fn visitFunc) error {
	n := &sc.Nodes[node]
	world := parent.Mul4(n.Local)
	for _, m := range n.Meshes {
		if err := fn(node, m, world); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := walk(sc, c, world, fn); err != nil {
			return err
		}
	}
	return nil
}

// CountAndAssign is the counting pass. It assigns every mesh reference its
// base vertex and base index as the running totals of all references
// visited before it. A mesh referenced by two nodes yields two descriptors.
func CountAndAssign(sc *scene.Scene) (*Layout, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	layout := &Layout{}
	err := walk(sc, sc.Root, mgl32.Ident4(), func(node, m int, world mgl32.Mat4) error {
		raw := &sc.Meshes[m]
		vtx, idx := raw.VertexCount(), raw.IndexCount()
		if uint64(layout.TotalVertices)+uint64(vtx) > math.MaxUint32 ||
			uint64(layout.TotalIndices)+uint64(idx) > math.MaxUint32 {
			return fmt.Errorf("mesh %q: scene exceeds 32-bit buffer offsets", raw.Name)
		}

		material := InvalidMaterial
		if raw.Material != scene.NoMaterial {
			material = uint32(raw.Material)
		}
		layout.Submeshes = append(layout.Submeshes, SubmeshDescriptor{
			Name:          raw.Name,
			Node:          node,
			Mesh:          m,
			MaterialIndex: material,
			VertexCount:   uint32(vtx),
			IndexCount:    uint32(idx),
			BaseVertex:    uint32(layout.TotalVertices),
			BaseIndex:     uint32(layout.TotalIndices),
			World:         world,
		})
		layout.TotalVertices += vtx
		layout.TotalIndices += idx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layout, nil
}

// Flatten runs both passes into b. The second pass walks the tree again and
// must meet the references in the same order as the first.
func Flatten(sc *scene.Scene, b Builder) (*Layout, error) {
	layout, err := CountAndAssign(sc)
	if err != nil {
		return nil, err
	}

	b.ReserveSpace(layout.TotalVertices, layout.TotalIndices)

	visit := 0
	err = walk(sc, sc.Root, mgl32.Ident4(), func(node, m int, _ mgl32.Mat4) error {
		if visit >= len(layout.Submeshes) {
			return fmt.Errorf("%w: extra reference to mesh %d", ErrLayoutMismatch, m)
		}
		desc := layout.Submeshes[visit]
		if desc.Node != node || desc.Mesh != m {
			return fmt.Errorf("%w: visit %d is node %d mesh %d, counted node %d mesh %d",
				ErrLayoutMismatch, visit, node, m, desc.Node, desc.Mesh)
		}
		visit++
		return b.PopulateBuffers(desc, &sc.Meshes[m])
	})
	if err != nil {
		return nil, err
	}
	return layout, nil
}

// Build flattens sc into a new Geometry and checks the result against the
// counted totals.
func Build(sc *scene.Scene) (*Geometry, *Layout, error) {
	geom := &Geometry{}
	layout, err := Flatten(sc, geom)
	if err != nil {
		return nil, nil, err
	}
	if len(geom.Vertices) != layout.TotalVertices || len(geom.Indices) != layout.TotalIndices {
		return nil, nil, fmt.Errorf("%w: %d/%d vertices, %d/%d indices", ErrLayoutMismatch,
			len(geom.Vertices), layout.TotalVertices, len(geom.Indices), layout.TotalIndices)
	}
	return geom, layout, nil
}

// ReserveSpace allocates the buffers with exactly the counted capacity.
func (g *Geometry) ReserveSpace(vertices, indices int) {
	g.Vertices = make([]Vertex, 0, vertices)
	g.Indices = make([]uint32, 0, indices)
}

// PopulateBuffers appends one mesh reference. Missing normals become
// DefaultNormal and missing UVs become (0,0).
func (g *Geometry) PopulateBuffers(desc SubmeshDescriptor, raw *scene.RawMesh) error {
	if uint32(len(g.Vertices)) != desc.BaseVertex || uint32(len(g.Indices)) != desc.BaseIndex {
		return fmt.Errorf("%w: %q expected at vertex %d index %d, buffers at %d/%d",
			ErrLayoutMismatch, desc.Name, desc.BaseVertex, desc.BaseIndex, len(g.Vertices), len(g.Indices))
	}

	hasNormals := len(raw.Normals) > 0
	hasUV := len(raw.UV0) > 0
	for i, p := range raw.Positions {
		v := Vertex{Position: p, Normal: DefaultNormal}
		if hasNormals {
			v.Normal = raw.Normals[i]
		}
		if hasUV {
			v.UV = raw.UV0[i]
		}
		g.Vertices = append(g.Vertices, v)
	}
	for _, f := range raw.Faces {
		g.Indices = append(g.Indices, f[0], f[1], f[2])
	}
	return nil
}

// Tiles reports whether the submesh ranges exactly partition both buffers
// with no gap or overlap.
func (l *Layout) Tiles() error {
	type span struct{ start, count uint32 }
	check := func(kind string, spans []span, total int) error {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		var next uint32
		for _, s := range spans {
			if s.start != next {
				return fmt.Errorf("%w: %s range starts at %d, expected %d", ErrLayoutMismatch, kind, s.start, next)
			}
			next += s.count
		}
		if int(next) != total {
			return fmt.Errorf("%w: %s ranges cover %d of %d", ErrLayoutMismatch, kind, next, total)
		}
		return nil
	}

	vtx := make([]span, len(l.Submeshes))
	idx := make([]span, len(l.Submeshes))
	for i, d := range l.Submeshes {
		vtx[i] = span{d.BaseVertex, d.VertexCount}
		idx[i] = span{d.BaseIndex, d.IndexCount}
	}
	if err := check("vertex", vtx, l.TotalVertices); err != nil {
		return err
	}
	return check("index", idx, l.TotalIndices)
}

// ComputeBounds returns the world-space box of all submeshes. ok is false
// for empty geometry.
func ComputeBounds(g *Geometry, l *Layout) (b Bounds, ok bool) {
	inf := float32(math.Inf(1))
	b.Min = mgl32.Vec3{inf, inf, inf}
	b.Max = mgl32.Vec3{-inf, -inf, -inf}

	for _, d := range l.Submeshes {
		for _, v := range g.Vertices[d.BaseVertex : d.BaseVertex+d.VertexCount] {
			p := d.World.Mul4x1(mgl32.Vec4{v.Position[0], v.Position[1], v.Position[2], 1}).Vec3()
			for i := 0; i < 3; i++ {
				b.Min[i] = min(b.Min[i], p[i])
				b.Max[i] = max(b.Max[i], p[i])
			}
			ok = true
		}
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}
