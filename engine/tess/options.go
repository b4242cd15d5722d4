// Package tess converts paths and rectangles into indexed triangle lists in
// the vertex layouts of package render.
//
// Every output position is offset by the target bounds' origin and then
// clamped into the bounds. That is a hard clip at tessellation time: geometry
// overflowing the bounds is squashed onto its edge rather than cut.
package tess

import (
	"errors"
	"fmt"
)

// DefaultTolerance is the maximum distance, in logical pixels, between a
// curve and the polyline approximating it.
const DefaultTolerance = 0.1

// ErrTessellation is matched by every tessellation failure.
var ErrTessellation = errors.New("tess: tessellation failed")

// Error describes why a path could not be tessellated.
type Error struct {
	Op     string
	Reason string
}

func (e *Error) Error() string { return fmt.Sprintf("tess: %s: %s", e.Op, e.Reason) }

func (e *Error) Is(target error) bool { return target == ErrTessellation }

func errorf(op, format string, args ...any) error {
	return &Error{Op: op, Reason: fmt.Sprintf(format, args...)}
}

type LineCap int

const (
	CapButt LineCap = iota
	CapSquare
	CapRound
)

type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// FillOptions control fill tessellation.
type FillOptions struct {
	Tolerance float32
}

// StrokeOptions control stroke tessellation.
type StrokeOptions struct {
	Width      float32
	Cap        LineCap
	Join       LineJoin
	MiterLimit float32 // ratio of miter length to half width; beyond it joins are beveled
	Tolerance  float32
}

func DefaultFill() FillOptions { return FillOptions{Tolerance: DefaultTolerance} }

func DefaultStroke() StrokeOptions {
	return StrokeOptions{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4, Tolerance: DefaultTolerance}
}

func (o StrokeOptions) WithWidth(w float32) StrokeOptions     { o.Width = w; return o }
func (o StrokeOptions) WithCap(c LineCap) StrokeOptions       { o.Cap = c; return o }
func (o StrokeOptions) WithJoin(j LineJoin) StrokeOptions     { o.Join = j; return o }
func (o StrokeOptions) WithMiterLimit(l float32) StrokeOptions { o.MiterLimit = l; return o }

func tolerance(t float32) float32 {
	if t <= 0 {
		return DefaultTolerance
	}
	return t
}
