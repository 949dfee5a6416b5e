package viewer

import (
	"github.com/Faultbox/gizmo/internal/engine/camera"
	"github.com/Faultbox/gizmo/internal/engine/input"
)

// Action is a viewer command produced by input.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionResetView
	ActionHold
	ActionToggleWireframe
	ActionToggleNormals
	ActionToggleBBox
	ActionToggleGrid
	ActionScreenshot
	ActionReload
)

var keyActions = map[input.Key]Action{
	input.KeyEscape: ActionQuit,
	input.KeyR:      ActionResetView,
	input.KeySpace:  ActionHold,
	input.KeyF:      ActionToggleWireframe,
	input.KeyN:      ActionToggleNormals,
	input.KeyB:      ActionToggleBBox,
	input.KeyG:      ActionToggleGrid,
	input.KeyF12:    ActionScreenshot,
	input.KeyF5:     ActionReload,
}

// applyEvent feeds mouse input to the camera and maps keys to actions.
// Right drag orbits, middle drag pans, the wheel zooms.
func applyEvent(cam *camera.OrbitCamera, ev input.Event) Action {
	switch ev.Type {
	case input.EventQuit:
		return ActionQuit
	case input.EventWindowResize:
		return ActionResize

	case input.EventMouseDown:
		switch ev.Button {
		case input.ButtonRight:
			cam.BeginOrbit()
		case input.ButtonMiddle:
			cam.BeginPan()
		}
	case input.EventMouseUp:
		if (ev.Button == input.ButtonRight && cam.Mode() == camera.Orbiting) ||
			(ev.Button == input.ButtonMiddle && cam.Mode() == camera.Panning) {
			cam.End()
		}
	case input.EventMouseMove:
		cam.Move(float32(ev.RelX), float32(ev.RelY))
	case input.EventMouseWheel:
		cam.Zoom(ev.WheelY)

	case input.EventKeyDown:
		if ev.Repeat {
			return ActionNone
		}
		if a, ok := keyActions[ev.Key]; ok {
			if a == ActionResetView {
				cam.Reset()
			}
			return a
		}
	}
	return ActionNone
}

// Overlays are the debug toggles.
type Overlays struct {
	Wireframe bool
	Normals   bool
	BBox      bool
	Grid      bool
}

// toggle flips the overlay an action names. It reports false for other
// actions.
func (o *Overlays) toggle(a Action) bool {
	switch a {
	case ActionToggleWireframe:
		o.Wireframe = !o.Wireframe
	case ActionToggleNormals:
		o.Normals = !o.Normals
	case ActionToggleBBox:
		o.BBox = !o.BBox
	case ActionToggleGrid:
		o.Grid = !o.Grid
	default:
		return false
	}
	return true
}
