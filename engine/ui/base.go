// Package ui holds the retained-mode widget protocol, the Canvas widgets draw
// through, and a few reference widgets.
//
// A parent widget drives its children explicitly: its Update calls theirs and
// its Render hands each child a narrowed Canvas via Canvas.Render. There is no
// implicit tree walk.
package ui

import (
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
)

// Widget is implemented by every visual component.
type Widget interface {
	// Size returns the widget's intrinsic size given an upper bound.
	Size(max geom.Size) geom.Size
	// Resize proposes a new size and returns the one the widget accepts.
	Resize(size geom.Size) geom.Size
	// Render emits geometry through c, whose origin is the widget's top-left.
	Render(c *Canvas) error
	// Update consumes input and reports whether a re-render is needed.
	Update(in *input.Input) bool
	// Focus reports whether the widget holds the input focus.
	Focus() bool
}

// Base supplies the default Widget behavior: greedy sizing, accepting any
// resize, never dirty and never focused. Embedders must still implement
// Render.
type Base struct{}

func (Base) Size(max geom.Size) geom.Size    { return max }
func (Base) Resize(size geom.Size) geom.Size { return size }
func (Base) Update(*input.Input) bool        { return false }
func (Base) Focus() bool                     { return false }
