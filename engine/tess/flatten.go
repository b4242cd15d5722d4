package tess

import (
	"math"

	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/path"
)

// maxCurveSegments bounds the subdivision of a single curve.
const maxCurveSegments = 256

type vertex struct {
	p geom.Point
	a [4]float32
}

type contour struct {
	pts    []vertex
	closed bool
}

// flatten turns every sub-path into a polyline. Curve attributes are
// interpolated from the previous vertex to the segment's end vertex.
// Consecutive duplicate points are dropped, as is a closing point equal to
// the start.
func flatten(p *path.Path, tol float32) []contour {
	out := make([]contour, 0, len(p.SubPaths()))
	for _, sp := range p.SubPaths() {
		c := contour{closed: sp.Closed}
		var prev vertex
		for _, seg := range sp.Segments {
			end := vertex{p: seg.To}
			copy(end.a[:], seg.Attrs)
			switch seg.Verb {
			case path.VerbBegin, path.VerbLine:
				c.push(end)
			case path.VerbQuadratic:
				n := segmentsFor(0.25*secondDiff(prev.p, seg.Ctrl1, seg.To), tol)
				for i := 1; i <= n; i++ {
					t := float32(i) / float32(n)
					c.push(vertex{p: quadAt(prev.p, seg.Ctrl1, seg.To, t), a: lerpAttrs(prev.a, end.a, t)})
				}
			case path.VerbCubic:
				dd := max(secondDiff(prev.p, seg.Ctrl1, seg.Ctrl2), secondDiff(seg.Ctrl1, seg.Ctrl2, seg.To))
				n := segmentsFor(0.75*dd, tol)
				for i := 1; i <= n; i++ {
					t := float32(i) / float32(n)
					c.push(vertex{p: cubicAt(prev.p, seg.Ctrl1, seg.Ctrl2, seg.To, t), a: lerpAttrs(prev.a, end.a, t)})
				}
			}
			prev = end
		}
		if c.closed && len(c.pts) > 1 && c.pts[0].p.Eq(c.pts[len(c.pts)-1].p) {
			c.pts = c.pts[:len(c.pts)-1]
		}
		out = append(out, c)
	}
	return out
}

func (c *contour) push(v vertex) {
	if n := len(c.pts); n > 0 && c.pts[n-1].p.Eq(v.p) {
		c.pts[n-1].a = v.a
		return
	}
	c.pts = append(c.pts, v)
}

// segmentsFor applies Wang's formula: scaled is the degree-dependent factor
// times the largest second difference of the control polygon.
func segmentsFor(scaled, tol float32) int {
	n := int(math.Ceil(math.Sqrt(float64(scaled / tol))))
	return min(max(n, 1), maxCurveSegments)
}

func secondDiff(a, b, c geom.Point) float32 {
	return geom.Vec(a.X-2*b.X+c.X, a.Y-2*b.Y+c.Y).Length()
}

func quadAt(p0, p1, p2 geom.Point, t float32) geom.Point {
	u := 1 - t
	return geom.Pt(
		u*u*p0.X+2*u*t*p1.X+t*t*p2.X,
		u*u*p0.Y+2*u*t*p1.Y+t*t*p2.Y,
	)
}

func cubicAt(p0, p1, p2, p3 geom.Point, t float32) geom.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return geom.Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

func lerpAttrs(a, b [4]float32, t float32) [4]float32 {
	var r [4]float32
	for i := range r {
		r[i] = a[i] + (b[i]-a[i])*t
	}
	return r
}
