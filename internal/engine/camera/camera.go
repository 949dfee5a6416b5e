// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the current mouse interaction.
type Mode int

const (
	Idle Mode = iota
	Orbiting
	Panning
)

func (m Mode) String() string {
	switch m {
	case Orbiting:
		return "orbit"
	case Panning:
		return "pan"
	default:
		return "idle"
	}
}

// Distance and pitch limits.
const (
	MinDistance = 0.1
	MaxDistance = 100
	MaxPitch    = 89
)

// Settings holds the camera's home pose and input sensitivities.
// Angles are in degrees.
type Settings struct {
	Yaw            float32
	Pitch          float32
	Distance       float32
	Target         mgl32.Vec3
	OrbitSpeed     float32 // degrees per pixel
	PanSpeed       float32 // world units per pixel
	ZoomSpeed      float32 // world units per wheel step
	ConstrainPitch bool
	FOV            float32
	Near, Far      float32
}

// DefaultSettings returns the viewer's standard home pose.
func DefaultSettings() Settings {
	return Settings{
		Yaw:            -90,
		Pitch:          60,
		Distance:       0.65,
		Target:         mgl32.Vec3{0, 0.125, 0},
		OrbitSpeed:     0.2,
		PanSpeed:       0.002,
		ZoomSpeed:      0.2,
		ConstrainPitch: true,
		FOV:            45,
		Near:           0.1,
		Far:            100,
	}
}

// OrbitCamera orbits a target point. The eye position is always derived
// from yaw, pitch and distance around the target.
type OrbitCamera struct {
	settings Settings

	yaw, pitch float32
	distance   float32
	target     mgl32.Vec3
	position   mgl32.Vec3
	up         mgl32.Vec3

	mode Mode
}

// New creates a camera at the home pose.
func New(s Settings) *OrbitCamera {
	c := &OrbitCamera{settings: s, up: mgl32.Vec3{0, 1, 0}}
	c.Reset()
	return c
}

// Reset returns to the home pose and ends any drag.
func (c *OrbitCamera) Reset() {
	c.yaw = c.settings.Yaw
	c.pitch = c.settings.Pitch
	c.distance = clampDistance(c.settings.Distance)
	c.target = c.settings.Target
	c.mode = Idle
	c.update()
}

// BeginOrbit starts an orbit drag.
func (c *OrbitCamera) BeginOrbit() { c.mode = Orbiting }

// BeginPan starts a pan drag.
func (c *OrbitCamera) BeginPan() { c.mode = Panning }

// End finishes the current drag.
func (c *OrbitCamera) End() { c.mode = Idle }

// Mode returns the current interaction.
func (c *OrbitCamera) Mode() Mode { return c.mode }

// Move applies relative mouse motion according to the current mode.
// dy grows downward, as reported by the window system.
func (c *OrbitCamera) Move(dx, dy float32) {
	switch c.mode {
	case Orbiting:
		c.Orbit(dx, dy)
	case Panning:
		c.Pan(dx, dy)
	}
}

// Orbit rotates around the target.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	c.yaw += dx * c.settings.OrbitSpeed
	c.pitch += dy * c.settings.OrbitSpeed
	if c.settings.ConstrainPitch {
		c.pitch = min(max(c.pitch, -MaxPitch), MaxPitch)
	}
	c.update()
}

// Pan slides the target in the view plane.
func (c *OrbitCamera) Pan(dx, dy float32) {
	forward := c.target.Sub(c.position)
	cross := forward.Cross(c.up)
	if cross.Len() < 1e-6 {
		return
	}
	right := cross.Normalize()
	up := right.Cross(forward).Normalize().Mul(-1)

	speed := c.settings.PanSpeed
	c.target = c.target.
		Add(right.Mul(-dx * speed)).
		Add(up.Mul(-dy * speed))
	c.update()
}

// Zoom moves toward the target for positive wheel steps.
func (c *OrbitCamera) Zoom(steps float32) {
	c.distance = clampDistance(c.distance - steps*c.settings.ZoomSpeed)
	c.update()
}

// FitToBounds centers on a bounding box and backs off until it fits the
// vertical field of view.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.target = lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius <= 0 {
		c.update()
		return
	}
	halfFOV := mgl32.DegToRad(c.settings.FOV) / 2
	c.distance = clampDistance(radius / math32.Sin(halfFOV) * 1.1)
	c.update()
}

func (c *OrbitCamera) update() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	offset := mgl32.Vec3{
		c.distance * math32.Cos(pitch) * math32.Cos(yaw),
		c.distance * math32.Sin(pitch),
		c.distance * math32.Cos(pitch) * math32.Sin(yaw),
	}
	c.position = c.target.Add(offset)
}

func clampDistance(d float32) float32 {
	return min(max(d, MinDistance), MaxDistance)
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 { return c.position }

// Target returns the orbit center.
func (c *OrbitCamera) Target() mgl32.Vec3 { return c.target }

// Yaw returns the horizontal angle in degrees.
func (c *OrbitCamera) Yaw() float32 { return c.yaw }

// Pitch returns the vertical angle in degrees.
func (c *OrbitCamera) Pitch() float32 { return c.pitch }

// Distance returns the distance to the target.
func (c *OrbitCamera) Distance() float32 { return c.distance }

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.target, c.up)
}

// ProjectionMatrix returns a perspective projection for the aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.settings.FOV), aspect, c.settings.Near, c.settings.Far)
}
