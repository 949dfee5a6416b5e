package grid

import (
	"strings"
	"testing"

	"github.com/Faultbox/gizmo/internal/engine/shader"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Size != 10 || p.CellSize != 0.1 || p.MinPixelsBetween != 2 {
		t.Errorf("unexpected params %+v", p)
	}
	if p.ThinColor[0] != 0.5 || p.ThickColor[3] != 1 {
		t.Errorf("unexpected colors %v %v", p.ThinColor, p.ThickColor)
	}
}

func TestSources(t *testing.T) {
	vs, fs := Sources()
	for _, src := range []string{vs, fs} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("unexpected version line in %.40q", src)
		}
	}
	if !strings.Contains(fs, "gGridMinPixelsBetweenCells") {
		t.Error("fragment shader lacks the cell spacing uniform")
	}
}

func TestCloseUnused(t *testing.T) {
	// No VAO and a program without a GL name: Close makes no GL calls.
	g := New(DefaultParams(), &shader.Program{})
	g.Close()
	if g.program != nil || g.vao != 0 {
		t.Error("Close should drop the program and VAO")
	}
}
