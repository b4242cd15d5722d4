// Package geom holds the small float32 point/size/box types shared by the
// toolkit. Coordinates are logical (display-scale independent) with Y down.
package geom

import "math"

type Point struct{ X, Y float32 }

type Vector struct{ X, Y float32 }

type Size struct{ Width, Height float32 }

// Box is an axis-aligned rectangle. Min is inclusive, Max exclusive.
type Box struct{ Min, Max Point }

func Pt(x, y float32) Point      { return Point{X: x, Y: y} }
func Vec(x, y float32) Vector    { return Vector{X: x, Y: y} }
func Sz(w, h float32) Size       { return Size{Width: w, Height: h} }
func NewBox(min, max Point) Box  { return Box{Min: min, Max: max} }
func Rect(x0, y0, x1, y1 float32) Box {
	return Box{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// BoxFromSize returns the box starting at origin with the given size.
func BoxFromSize(origin Point, s Size) Box {
	return Box{Min: origin, Max: Point{origin.X + s.Width, origin.Y + s.Height}}
}

func (p Point) Add(v Vector) Point   { return Point{p.X + v.X, p.Y + v.Y} }
func (p Point) Sub(q Point) Vector   { return Vector{p.X - q.X, p.Y - q.Y} }
func (p Point) ToVector() Vector     { return Vector{p.X, p.Y} }
func (p Point) Eq(q Point) bool      { return p.X == q.X && p.Y == q.Y }
func (p Point) Lerp(q Point, t float32) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Min returns the component-wise minimum of p and q.
func (p Point) Min(q Point) Point {
	return Point{min(p.X, q.X), min(p.Y, q.Y)}
}

// Max returns the component-wise maximum of p and q.
func (p Point) Max(q Point) Point {
	return Point{max(p.X, q.X), max(p.Y, q.Y)}
}

// Clamp limits p component-wise to [b.Min, b.Max].
func (p Point) Clamp(b Box) Point {
	return p.Max(b.Min).Min(b.Max)
}

func (v Vector) Add(w Vector) Vector      { return Vector{v.X + w.X, v.Y + w.Y} }
func (v Vector) Sub(w Vector) Vector      { return Vector{v.X - w.X, v.Y - w.Y} }
func (v Vector) Scale(s float32) Vector   { return Vector{v.X * s, v.Y * s} }
func (v Vector) Dot(w Vector) float32     { return v.X*w.X + v.Y*w.Y }
func (v Vector) Cross(w Vector) float32   { return v.X*w.Y - v.Y*w.X }
func (v Vector) Perp() Vector             { return Vector{-v.Y, v.X} }
func (v Vector) Neg() Vector              { return Vector{-v.X, -v.Y} }
func (v Vector) Length() float32          { return float32(math.Hypot(float64(v.X), float64(v.Y))) }
func (v Vector) LengthSquared() float32   { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return Vector{v.X / l, v.Y / l}
}

func (s Size) Min(o Size) Size { return Size{min(s.Width, o.Width), min(s.Height, o.Height)} }
func (s Size) Max(o Size) Size { return Size{max(s.Width, o.Width), max(s.Height, o.Height)} }
func (s Size) IsEmpty() bool   { return s.Width <= 0 || s.Height <= 0 }

func (b Box) Width() float32  { return b.Max.X - b.Min.X }
func (b Box) Height() float32 { return b.Max.Y - b.Min.Y }
func (b Box) Size() Size      { return Size{b.Width(), b.Height()} }
func (b Box) IsEmpty() bool   { return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y }

// Contains reports whether p lies inside b (min inclusive, max exclusive).
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

func (b Box) Translate(v Vector) Box {
	return Box{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Intersect returns the overlap of b and o. The result may be empty but its
// Max never lies before its Min.
func (b Box) Intersect(o Box) Box {
	r := Box{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
	r.Max = r.Max.Max(r.Min)
	return r
}
