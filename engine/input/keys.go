package input

import "fmt"

// Key identifies a keyboard key independently of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Mod is a bit set of keyboard modifiers.
type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// KeyState is the per-tick state of a key.
type KeyState int

const (
	KeyNone KeyState = iota
	KeyPressed
	KeyDown
	KeyReleased
)

func (s KeyState) String() string {
	switch s {
	case KeyPressed:
		return "pressed"
	case KeyDown:
		return "down"
	case KeyReleased:
		return "released"
	default:
		return "none"
	}
}

// MouseButton identifies a pointer button. Only Left, Middle and Right have
// defined semantics; OtherButton values exist so that platforms can report
// what they saw instead of dropping it.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight

	numButtons = 3
)

// OtherButton returns the identifier of the n-th extra pointer button
// (n counts from 0 after the three canonical buttons).
func OtherButton(n int) MouseButton { return MouseButton(numButtons + n) }

// Supported reports whether b is one of the canonical buttons.
func (b MouseButton) Supported() bool { return b >= 0 && b < numButtons }

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	default:
		return fmt.Sprintf("other(%d)", int(b)-numButtons)
	}
}

// MouseState is the per-tick state of a pointer button.
type MouseState int

const (
	MouseNone MouseState = iota
	MouseClicked
	MouseDown
	MouseReleased
)

func (s MouseState) String() string {
	switch s {
	case MouseClicked:
		return "clicked"
	case MouseDown:
		return "down"
	case MouseReleased:
		return "released"
	default:
		return "none"
	}
}
