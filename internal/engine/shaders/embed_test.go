package shaders

import (
	"strings"
	"testing"
)

func TestSourcesEmbedded(t *testing.T) {
	sources := map[string]string{
		"model.vert": ModelVertexShader,
		"model.frag": ModelFragmentShader,
		"grid.vert":  GridVertexShader,
		"grid.frag":  GridFragmentShader,
		"lines.vert": LineVertexShader,
		"lines.frag": LineFragmentShader,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing 410 core version line", name)
		}
	}
}

func TestModelAttributeLocations(t *testing.T) {
	for _, want := range []string{
		"layout(location = 0) in vec3 aPosition",
		"layout(location = 1) in vec2 aTexCoord",
		"layout(location = 2) in vec3 aNormal",
	} {
		if !strings.Contains(ModelVertexShader, want) {
			t.Errorf("model.vert missing %q", want)
		}
	}
}

func TestGridUniforms(t *testing.T) {
	for _, u := range []string{"gVP", "gGridSize", "gCameraWorldPos"} {
		if !strings.Contains(GridVertexShader, u) {
			t.Errorf("grid.vert missing %s", u)
		}
	}
	for _, u := range []string{"gGridCellSize", "gGridColorThin", "gGridColorThick", "gGridMinPixelsBetweenCells"} {
		if !strings.Contains(GridFragmentShader, u) {
			t.Errorf("grid.frag missing %s", u)
		}
	}
}
