package lighting

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func TestOrbitLightAt(t *testing.T) {
	l := DefaultOrbitLight()

	tests := []struct {
		tick uint64
		want mgl32.Vec3
	}{
		{0, mgl32.Vec3{5, 1, 0}},
		{20, mgl32.Vec3{5 * math32.Cos(1.5), 1, 5 * math32.Sin(1.5)}},
	}
	for _, tt := range tests {
		got := l.At(tt.tick)
		for i := range 3 {
			if !near(got.Position[i], tt.want[i]) {
				t.Errorf("tick %d: position = %v, want %v", tt.tick, got.Position, tt.want)
				break
			}
		}
		if got.Color != l.Color {
			t.Errorf("tick %d: color = %v", tt.tick, got.Color)
		}
	}
}

func TestAngleWraps(t *testing.T) {
	l := DefaultOrbitLight()
	for _, tick := range []uint64{0, 83, 84, 1000, 1 << 40} {
		a := l.Angle(tick)
		if a < 0 || a >= 2*math.Pi {
			t.Errorf("tick %d: angle %v out of range", tick, a)
		}
	}
	// 84 steps of 0.075 pass 2π once.
	want := float32(84*0.075 - 2*math.Pi)
	if got := l.Angle(84); !near(got, want) {
		t.Errorf("angle(84) = %v, want %v", got, want)
	}
}

func TestAttenuation(t *testing.T) {
	a := Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}
	if got := a.At(0); got != 1 {
		t.Errorf("At(0) = %v, want 1", got)
	}
	want := float32(1 / (1 + 0.09*5 + 0.032*25))
	if got := a.At(5); !near(got, want) {
		t.Errorf("At(5) = %v, want %v", got, want)
	}
	if got := (Attenuation{}).At(3); got != 1 {
		t.Errorf("zero coefficients should not divide by zero, got %v", got)
	}
}

func TestHighlight(t *testing.T) {
	h := Highlight{Match: "Lamp", Color: mgl32.Vec3{1, 0.1, 0.1}}

	tests := []struct {
		name    string
		phaseOn bool
		want    bool
	}{
		{"StreetLamp_01", true, true},
		{"StreetLamp_01", false, false},
		{"Body", true, false},
		{"lamp", true, false},
	}
	for _, tt := range tests {
		c, ok := h.ColorFor(tt.name, tt.phaseOn)
		if ok != tt.want {
			t.Errorf("ColorFor(%q, %v) = %v, want %v", tt.name, tt.phaseOn, ok, tt.want)
		}
		if ok && c != h.Color {
			t.Errorf("unexpected color %v", c)
		}
	}

	if (Highlight{}).Applies("anything") {
		t.Error("empty match should never apply")
	}
}
