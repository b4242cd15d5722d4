package core

import (
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
)

// Event is anything a Window delivers to the Driver.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventResize carries the new logical size and the display scale factor.
type EventResize struct {
	Size  geom.Size
	Scale float32
}

func (EventResize) isEvent() {}

type EventKey struct {
	Key  input.Key
	Down bool
	Mods input.Mod
}

func (EventKey) isEvent() {}

// EventMouseMove is in logical coordinates.
type EventMouseMove struct{ X, Y float32 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button input.MouseButton
	Down   bool
}

func (EventMouseButton) isEvent() {}

// EventTick marks the end of a batch of events: the Driver runs one cycle.
type EventTick struct{}

func (EventTick) isEvent() {}
