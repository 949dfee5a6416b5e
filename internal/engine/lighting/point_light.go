// Package lighting provides the viewer's orbiting point light.
package lighting

import (
	"math"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Attenuation holds the point light falloff coefficients.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	denom := a.Constant + a.Linear*d + a.Quadratic*d*d
	if denom <= 0 {
		return 1
	}
	return 1 / denom
}

// PointLight is one frame's light state for GPU upload.
type PointLight struct {
	Position    mgl32.Vec3
	Color       mgl32.Vec3
	Attenuation Attenuation
}

// OrbitLight circles the origin at a fixed height, advancing Step radians
// per tick.
type OrbitLight struct {
	Radius      float32
	Height      float32
	Step        float32
	Color       mgl32.Vec3
	Attenuation Attenuation
	Ambient     float32
	Shininess   float32
}

// DefaultOrbitLight returns the standard warm-white orbiting light.
func DefaultOrbitLight() OrbitLight {
	return OrbitLight{
		Radius:      5,
		Height:      1,
		Step:        0.075,
		Color:       mgl32.Vec3{1, 1, 0.9},
		Attenuation: Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032},
		Ambient:     1,
		Shininess:   32,
	}
}

// Angle returns the orbit angle after tick steps, wrapped to [0, 2π).
func (l OrbitLight) Angle(tick uint64) float32 {
	// float64 so large tick counts stay precise.
	a := math.Mod(float64(tick)*float64(l.Step), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return float32(a)
}

// At returns the light state after tick steps.
func (l OrbitLight) At(tick uint64) PointLight {
	a := l.Angle(tick)
	return PointLight{
		Position: mgl32.Vec3{
			l.Radius * math32.Cos(a),
			l.Height,
			l.Radius * math32.Sin(a),
		},
		Color:       l.Color,
		Attenuation: l.Attenuation,
	}
}

// Highlight recolors meshes whose name contains Match while the blink
// phase is on.
type Highlight struct {
	Match string
	Color mgl32.Vec3
}

// Applies reports whether a mesh named name blinks.
func (h Highlight) Applies(name string) bool {
	return h.Match != "" && strings.Contains(name, h.Match)
}

// ColorFor returns the color override for a mesh, if any.
func (h Highlight) ColorFor(name string, phaseOn bool) (mgl32.Vec3, bool) {
	if phaseOn && h.Applies(name) {
		return h.Color, true
	}
	return mgl32.Vec3{}, false
}
