package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gizmo/internal/engine/mesh"
)

func TestBBoxLines(t *testing.T) {
	b := mesh.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 3}}
	v := BBoxLines(b, 0.5)

	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("got %d floats, want %d", len(v), BBoxWireframeVertexCount*3)
	}
	lo := [3]float32{-0.5, -0.5, -0.5}
	hi := [3]float32{1.5, 2.5, 3.5}
	for i := 0; i < len(v); i += 3 {
		for a := 0; a < 3; a++ {
			if v[i+a] != lo[a] && v[i+a] != hi[a] {
				t.Fatalf("vertex %d axis %d = %v, not a padded corner", i/3, a, v[i+a])
			}
		}
	}
}

func triangleGeometry(world mgl32.Mat4) (*mesh.Geometry, *mesh.Layout) {
	g := &mesh.Geometry{
		Vertices: []mesh.Vertex{
			{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{3, 0, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{0, 3, 0}, Normal: [3]float32{0, 0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	l := &mesh.Layout{
		Submeshes:     []mesh.SubmeshDescriptor{{VertexCount: 3, IndexCount: 3, World: world}},
		TotalVertices: 3,
		TotalIndices:  3,
	}
	return g, l
}

func TestFaceNormalLines(t *testing.T) {
	g, l := triangleGeometry(mgl32.Translate3D(0, 0, 5))
	lines := FaceNormalLines(g, l, 2)

	want := []float32{1, 1, 5, 1, 1, 7}
	if len(lines) != len(want) {
		t.Fatalf("got %d floats, want %d", len(lines), len(want))
	}
	for i := range want {
		if math32.Abs(lines[i]-want[i]) > 1e-5 {
			t.Errorf("lines = %v, want %v", lines, want)
			break
		}
	}
}

func TestFaceNormalLinesScaled(t *testing.T) {
	// Non-uniform scale must not change the normal direction of a flat face.
	g, l := triangleGeometry(mgl32.Scale3D(2, 2, 1))
	lines := FaceNormalLines(g, l, 1)
	dir := mgl32.Vec3{lines[3] - lines[0], lines[4] - lines[1], lines[5] - lines[2]}
	if math32.Abs(dir[2]-1) > 1e-5 || math32.Abs(dir[0]) > 1e-5 || math32.Abs(dir[1]) > 1e-5 {
		t.Errorf("normal direction = %v, want +Z", dir)
	}
}

func TestFaceNormalLinesNil(t *testing.T) {
	if FaceNormalLines(nil, nil, 1) != nil {
		t.Error("expected nil for missing geometry")
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "gizmo")
	sc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue (GL order is bottom-up).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "gizmo_2024-05-06_07-08-09") {
		t.Errorf("unexpected filename %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %v, want blue", top)
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}
