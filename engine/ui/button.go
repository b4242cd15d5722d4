package ui

import (
	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
	"github.com/hubastard/xenon/engine/tess"
)

// Button is a rounded block that calls OnClick when the left button is
// pressed and released over it.
type Button struct {
	Preferred geom.Size
	Radius    float32

	Idle, Hover, Pressed colors.Color
	FocusRing            colors.Color

	OnClick func()

	// bounds is where the button was last drawn, in window coordinates.
	bounds  geom.Box
	hovered bool
	pressed bool
	focused bool
}

func NewButton(preferred geom.Size, onClick func()) *Button {
	return &Button{
		Preferred: preferred,
		Radius:    6,
		Idle:      colors.RGB(70, 70, 80),
		Hover:     colors.RGB(90, 90, 105),
		Pressed:   colors.RGB(50, 50, 60),
		FocusRing: colors.RGB(120, 160, 255),
		OnClick:   onClick,
	}
}

func (b *Button) Size(max geom.Size) geom.Size    { return b.Preferred.Min(max) }
func (b *Button) Resize(size geom.Size) geom.Size { return size }
func (b *Button) Focus() bool                     { return b.focused }

func (b *Button) Update(in *input.Input) bool {
	inside := !b.bounds.IsEmpty() && b.bounds.Contains(in.MousePosition())
	dirty := inside != b.hovered
	b.hovered = inside

	switch in.MouseState(input.MouseLeft) {
	case input.MouseClicked:
		if b.focused != inside {
			b.focused = inside
			dirty = true
		}
		if inside {
			b.pressed = true
			dirty = true
		}
	case input.MouseReleased:
		if b.pressed {
			b.pressed = false
			dirty = true
			if inside && b.OnClick != nil {
				b.OnClick()
			}
		}
	}
	return dirty
}

func (b *Button) Render(c *Canvas) error {
	b.bounds = c.Bounds()
	col := b.Idle
	switch {
	case b.pressed:
		col = b.Pressed
	case b.hovered:
		col = b.Hover
	}
	local := c.Local()
	if local.IsEmpty() {
		return nil
	}
	if err := c.FillRoundedRect(local, b.Radius, col); err != nil {
		return err
	}
	if b.focused && b.FocusRing[3] > 0 {
		return c.StrokeRect(local, b.FocusRing, tess.DefaultStroke().WithWidth(2))
	}
	return nil
}
