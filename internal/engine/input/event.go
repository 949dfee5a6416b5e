package input

// EventType is the kind of a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a viewer key, independent of the window system.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyR
	KeyF
	KeyN
	KeyB
	KeyG
	KeyF5
	KeyF12
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyR:
		return "R"
	case KeyF:
		return "F"
	case KeyN:
		return "N"
	case KeyB:
		return "B"
	case KeyG:
		return "G"
	case KeyF5:
		return "F5"
	case KeyF12:
		return "F12"
	default:
		return "Unknown"
	}
}

// Button is a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Button Button
	WheelY float32
}
