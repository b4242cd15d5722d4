// Package input turns raw, possibly coalesced platform events into stable
// per-tick key and pointer-button states.
//
// Events are only buffered by the Process* methods. Update, called once per
// tick, promotes them: a key is Pressed for exactly one tick, then Down until
// a release makes it Released for one tick, then None. Buttons follow the
// same shape with Clicked in place of Pressed.
package input

import "github.com/hubastard/xenon/engine/geom"

type mouseEvent struct {
	state  MouseState
	button MouseButton
}

// Input is single-owner and not safe for concurrent use.
type Input struct {
	keys     map[Key]KeyState
	pressed  []Key
	released []Key

	mousePos    geom.Point
	mouse       [numButtons]MouseState
	mouseEvents []mouseEvent

	bounds geom.Box
}

// New returns an Input whose pointer queries are validated against bounds.
func New(bounds geom.Box) *Input {
	return &Input{keys: map[Key]KeyState{}, bounds: bounds}
}

func (in *Input) SetBounds(bounds geom.Box) { in.bounds = bounds }
func (in *Input) Bounds() geom.Box          { return in.bounds }

// ProcessPressed buffers a key press for the next Update.
func (in *Input) ProcessPressed(k Key) { in.pressed = append(in.pressed, k) }

// ProcessReleased buffers a key release for the next Update.
func (in *Input) ProcessReleased(k Key) { in.released = append(in.released, k) }

// ProcessMouseMove records the pointer position. It is not buffered: the
// latest position is always current.
func (in *Input) ProcessMouseMove(p geom.Point) { in.mousePos = p }

// ProcessMouseClick buffers a button press for the next Update.
func (in *Input) ProcessMouseClick(b MouseButton) error {
	return in.pushMouse("click", MouseClicked, b)
}

// ProcessMouseRelease buffers a button release for the next Update.
func (in *Input) ProcessMouseRelease(b MouseButton) error {
	return in.pushMouse("release", MouseReleased, b)
}

func (in *Input) pushMouse(op string, s MouseState, b MouseButton) error {
	if !b.Supported() {
		return &UnsupportedButtonError{Button: b, Op: op}
	}
	in.mouseEvents = append(in.mouseEvents, mouseEvent{state: s, button: b})
	return nil
}

// Update promotes buffered events into the stable state and drains every
// buffer. Keys are promoted before buttons.
func (in *Input) Update() {
	for k, s := range in.keys {
		switch s {
		case KeyPressed:
			in.keys[k] = KeyDown
		case KeyReleased:
			in.keys[k] = KeyNone
		}
	}
	for _, k := range in.pressed {
		in.keys[k] = KeyPressed
	}
	for _, k := range in.released {
		in.keys[k] = KeyReleased
	}

	for b, s := range in.mouse {
		switch s {
		case MouseClicked:
			in.mouse[b] = MouseDown
		case MouseReleased:
			in.mouse[b] = MouseNone
		}
	}
	// Only the first buffered event per button is honored each tick.
	for b := range in.mouse {
		for _, ev := range in.mouseEvents {
			if ev.button == MouseButton(b) {
				in.mouse[b] = ev.state
				break
			}
		}
	}

	in.pressed = in.pressed[:0]
	in.released = in.released[:0]
	in.mouseEvents = in.mouseEvents[:0]
}

// NeedsUpdate reports whether any event is waiting for Update.
func (in *Input) NeedsUpdate() bool {
	return len(in.pressed) > 0 || len(in.released) > 0 || len(in.mouseEvents) > 0
}

// KeyState returns the current state of k.
func (in *Input) KeyState(k Key) KeyState { return in.keys[k] }

// IsDown reports whether k is held, including the tick it was pressed.
func (in *Input) IsDown(k Key) bool {
	s := in.keys[k]
	return s == KeyPressed || s == KeyDown
}

// IsPressed reports whether k was first pressed this tick.
func (in *Input) IsPressed(k Key) bool { return in.keys[k] == KeyPressed }

// IsReleased reports whether k was released this tick.
func (in *Input) IsReleased(k Key) bool { return in.keys[k] == KeyReleased }

// IsMouseClicked returns the pointer position if b was pressed this tick and
// the pointer lies within the bounds.
func (in *Input) IsMouseClicked(b MouseButton) (geom.Point, bool) {
	return in.mouseQuery("clicked", b, MouseClicked)
}

// IsMouseDown returns the pointer position while b is held after its click
// tick and the pointer lies within the bounds.
func (in *Input) IsMouseDown(b MouseButton) (geom.Point, bool) {
	return in.mouseQuery("down", b, MouseDown)
}

// IsMouseReleased returns the pointer position if b was released this tick
// and the pointer lies within the bounds.
func (in *Input) IsMouseReleased(b MouseButton) (geom.Point, bool) {
	return in.mouseQuery("released", b, MouseReleased)
}

// MouseState returns the raw state of b.
func (in *Input) MouseState(b MouseButton) MouseState {
	in.mustSupport("state", b)
	return in.mouse[b]
}

// MousePosition returns the pointer translated into the bounds' space.
func (in *Input) MousePosition() geom.Point { return in.local() }

// mouseQuery panics on unsupported buttons: asking about a button that can
// never be reported is a programming error.
func (in *Input) mouseQuery(op string, b MouseButton, want MouseState) (geom.Point, bool) {
	in.mustSupport(op, b)
	if in.mouse[b] != want || !in.bounds.Contains(in.mousePos) {
		return geom.Point{}, false
	}
	return in.local(), true
}

func (in *Input) mustSupport(op string, b MouseButton) {
	if !b.Supported() {
		panic(&UnsupportedButtonError{Button: b, Op: op})
	}
}

func (in *Input) local() geom.Point {
	return in.mousePos.Add(in.bounds.Min.ToVector()).Min(in.bounds.Max)
}
