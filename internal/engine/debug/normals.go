package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gizmo/internal/engine/mesh"
)

// FaceNormalLines returns one world-space line per triangle, from the
// face centroid along the averaged vertex normal, length units long.
// Format: [x, y, z] per vertex, two vertices per line.
func FaceNormalLines(g *mesh.Geometry, l *mesh.Layout, length float32) []float32 {
	if g == nil || l == nil {
		return nil
	}
	out := make([]float32, 0, l.TotalIndices/3*6)
	for _, d := range l.Submeshes {
		normalMat := d.World.Mat3().Inv().Transpose()
		verts := g.Vertices[d.BaseVertex : d.BaseVertex+d.VertexCount]
		idx := g.Indices[d.BaseIndex : d.BaseIndex+d.IndexCount]

		for f := 0; f+2 < len(idx); f += 3 {
			var centroid, normal mgl32.Vec3
			for _, i := range idx[f : f+3] {
				v := verts[i]
				centroid = centroid.Add(mgl32.Vec3(v.Position))
				normal = normal.Add(mgl32.Vec3(v.Normal))
			}
			centroid = d.World.Mul4x1(centroid.Mul(1.0 / 3).Vec4(1)).Vec3()
			normal = normalMat.Mul3x1(normal)
			if normal.Len() == 0 {
				continue
			}
			tip := centroid.Add(normal.Normalize().Mul(length))
			out = append(out,
				centroid[0], centroid[1], centroid[2],
				tip[0], tip[1], tip[2],
			)
		}
	}
	return out
}
