package ui

import (
	"math/rand/v2"

	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
)

// Rectangle is a solid block of a fixed size.
type Rectangle struct {
	Base
	Color   colors.Color
	MaxSize geom.Size
}

func (r *Rectangle) Size(max geom.Size) geom.Size { return r.MaxSize.Min(max) }

// Resize keeps the rectangle's own size whatever is proposed.
func (r *Rectangle) Resize(geom.Size) geom.Size { return r.MaxSize }

func (r *Rectangle) Render(c *Canvas) error {
	if r.MaxSize.IsEmpty() {
		return nil
	}
	return c.FillRect(geom.BoxFromSize(geom.Point{}, r.MaxSize), r.Color)
}

// RandomRectangle is a Rectangle that picks a new size and color whenever
// space is pressed or the left button is clicked.
type RandomRectangle struct {
	rect    Rectangle
	maxSize geom.Size
	rng     *rand.Rand
}

// NewRandomRectangle draws from src, or from a randomly seeded source when
// src is nil.
func NewRandomRectangle(maxSize geom.Size, src rand.Source) *RandomRectangle {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	r := &RandomRectangle{maxSize: maxSize, rng: rand.New(src)}
	r.shuffle()
	return r
}

func (r *RandomRectangle) shuffle() {
	r.rect.MaxSize = geom.Sz(r.rng.Float32()*r.maxSize.Width, r.rng.Float32()*r.maxSize.Height)
	r.rect.Color = colors.RGB(uint8(r.rng.IntN(255)), uint8(r.rng.IntN(255)), uint8(r.rng.IntN(255)))
}

// Current returns the rectangle as it will be drawn next.
func (r *RandomRectangle) Current() Rectangle { return r.rect }

func (r *RandomRectangle) Size(max geom.Size) geom.Size { return r.rect.Size(max) }
func (r *RandomRectangle) Resize(s geom.Size) geom.Size { return r.rect.Resize(s) }
func (r *RandomRectangle) Render(c *Canvas) error       { return r.rect.Render(c) }
func (r *RandomRectangle) Focus() bool                  { return false }

func (r *RandomRectangle) Update(in *input.Input) bool {
	_, clicked := in.IsMouseClicked(input.MouseLeft)
	if !in.IsPressed(input.KeySpace) && !clicked {
		return false
	}
	r.shuffle()
	return true
}
