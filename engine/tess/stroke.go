package tess

import (
	"math"

	"github.com/hubastard/xenon/engine/geom"
)

// maxArcSegments bounds the fan used for round joins and caps.
const maxArcSegments = 64

type stroker struct {
	opts StrokeOptions
	hw   float32
	tol  float32
	m    mesh
}

// stroke expands every contour with at least two points into quads, joins
// and caps.
func stroke(op string, cs []contour, opts StrokeOptions) (mesh, error) {
	if !(opts.Width > 0) {
		return mesh{}, errorf(op, "stroke width %v is not positive", opts.Width)
	}
	s := stroker{opts: opts, hw: opts.Width / 2, tol: tolerance(opts.Tolerance)}
	for _, c := range cs {
		if len(c.pts) < 2 {
			continue
		}
		s.contour(c)
	}
	if len(s.m.idx) == 0 {
		return mesh{}, errorf(op, "path has zero length")
	}
	return s.m, nil
}

func (s *stroker) contour(c contour) {
	pts := c.pts
	closed := c.closed && len(pts) > 2
	nseg := len(pts) - 1
	if closed {
		nseg = len(pts)
	}
	dirs := make([]geom.Vector, nseg)
	for i := range dirs {
		a, b := pts[i], pts[(i+1)%len(pts)]
		dirs[i] = b.p.Sub(a.p).Normalize()
		s.segment(a, b, dirs[i])
	}
	for i := 1; i < nseg; i++ {
		s.join(pts[i], dirs[i-1], dirs[i])
	}
	if closed {
		s.join(pts[0], dirs[nseg-1], dirs[0])
		return
	}
	s.capAt(pts[0], dirs[0].Neg())
	s.capAt(pts[len(pts)-1], dirs[nseg-1])
}

func (s *stroker) segment(a, b vertex, d geom.Vector) {
	n := d.Perp().Scale(s.hw)
	a0 := s.m.add(vertex{p: a.p.Add(n), a: a.a})
	a1 := s.m.add(vertex{p: a.p.Add(n.Neg()), a: a.a})
	b0 := s.m.add(vertex{p: b.p.Add(n), a: b.a})
	b1 := s.m.add(vertex{p: b.p.Add(n.Neg()), a: b.a})
	s.m.tri(a0, a1, b0)
	s.m.tri(b0, a1, b1)
}

// join fills the wedge on the outer side of the turn at v from direction d0
// to d1.
func (s *stroker) join(v vertex, d0, d1 geom.Vector) {
	cross := d0.Cross(d1)
	if math.Abs(float64(cross)) < 1e-6 {
		return
	}
	side := float32(1)
	if cross > 0 {
		side = -1
	}
	n0 := d0.Perp().Scale(side)
	n1 := d1.Perp().Scale(side)
	center := s.m.add(v)
	a := s.m.add(vertex{p: v.p.Add(n0.Scale(s.hw)), a: v.a})
	b := s.m.add(vertex{p: v.p.Add(n1.Scale(s.hw)), a: v.a})

	switch s.opts.Join {
	case JoinRound:
		s.arc(v, center, a, n0.Scale(s.hw), angleBetween(n0, n1))
		return
	case JoinMiter:
		mid := n0.Add(n1).Normalize()
		cosHalf := mid.Dot(n0)
		limit := s.opts.MiterLimit
		if cosHalf > 1e-6 && (limit <= 0 || 1/cosHalf <= limit) {
			tip := s.m.add(vertex{p: v.p.Add(mid.Scale(s.hw / cosHalf)), a: v.a})
			s.m.tri(center, a, tip)
			s.m.tri(center, tip, b)
			return
		}
	}
	s.m.tri(center, a, b)
}

// capAt closes an open end at v; out points away from the stroke.
func (s *stroker) capAt(v vertex, out geom.Vector) {
	n := out.Perp().Scale(s.hw)
	switch s.opts.Cap {
	case CapSquare:
		ext := out.Scale(s.hw)
		a := s.m.add(vertex{p: v.p.Add(n), a: v.a})
		b := s.m.add(vertex{p: v.p.Add(n.Neg()), a: v.a})
		c := s.m.add(vertex{p: v.p.Add(n.Add(ext)), a: v.a})
		d := s.m.add(vertex{p: v.p.Add(n.Neg().Add(ext)), a: v.a})
		s.m.tri(a, b, c)
		s.m.tri(c, b, d)
	case CapRound:
		center := s.m.add(v)
		a := s.m.add(vertex{p: v.p.Add(n), a: v.a})
		s.arc(v, center, a, n, -math.Pi)
	}
}

// arc fans triangles around center starting at the vertex first, whose
// offset from center is r, sweeping the given signed angle.
func (s *stroker) arc(v vertex, center, first int, r geom.Vector, sweep float64) {
	steps := arcSteps(sweep, s.hw, s.tol)
	prev := first
	for k := 1; k <= steps; k++ {
		t := sweep * float64(k) / float64(steps)
		sin, cos := math.Sincos(t)
		off := geom.Vec(
			float32(float64(r.X)*cos-float64(r.Y)*sin),
			float32(float64(r.X)*sin+float64(r.Y)*cos),
		)
		cur := s.m.add(vertex{p: v.p.Add(off), a: v.a})
		s.m.tri(center, prev, cur)
		prev = cur
	}
}

func angleBetween(a, b geom.Vector) float64 {
	return math.Atan2(float64(a.Cross(b)), float64(a.Dot(b)))
}

// arcSteps picks enough segments for the chord error to stay within tol.
func arcSteps(sweep float64, radius, tol float32) int {
	step := math.Pi / 2
	if tol < radius {
		step = 2 * math.Acos(1-float64(tol/radius))
	}
	n := int(math.Ceil(math.Abs(sweep) / step))
	return min(max(n, 1), maxArcSegments)
}
