package path

import (
	"math"

	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
)

// kappa is the cubic control distance approximating a quarter circle.
const kappa = 0.5522847498

// RectPath returns the closed outline of r in a single color.
func RectPath(r geom.Box, c colors.Color) (*ColorPath, error) {
	return NewColorPath().SetColor(c).
		Begin(r.Min).
		LineTo(geom.Pt(r.Max.X, r.Min.Y)).
		LineTo(r.Max).
		LineTo(geom.Pt(r.Min.X, r.Max.Y)).
		End(true).
		Build()
}

// RoundedRectPath returns a rectangle with corners of the given radius,
// clamped to half the shorter side.
func RoundedRectPath(r geom.Box, radius float32, c colors.Color) (*ColorPath, error) {
	radius = min(max(radius, 0), min(r.Width(), r.Height())/2)
	if radius == 0 {
		return RectPath(r, c)
	}
	k := kappa * radius
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	return NewColorPath().SetColor(c).
		Begin(geom.Pt(x0+radius, y0)).
		LineTo(geom.Pt(x1-radius, y0)).
		CubicBezierTo(geom.Pt(x1-radius+k, y0), geom.Pt(x1, y0+radius-k), geom.Pt(x1, y0+radius)).
		LineTo(geom.Pt(x1, y1-radius)).
		CubicBezierTo(geom.Pt(x1, y1-radius+k), geom.Pt(x1-radius+k, y1), geom.Pt(x1-radius, y1)).
		LineTo(geom.Pt(x0+radius, y1)).
		CubicBezierTo(geom.Pt(x0+radius-k, y1), geom.Pt(x0, y1-radius+k), geom.Pt(x0, y1-radius)).
		LineTo(geom.Pt(x0, y0+radius)).
		CubicBezierTo(geom.Pt(x0, y0+radius-k), geom.Pt(x0+radius-k, y0), geom.Pt(x0+radius, y0)).
		End(true).
		Build()
}

// EllipsePath approximates an ellipse with four cubic segments.
func EllipsePath(center geom.Point, rx, ry float32, c colors.Color) (*ColorPath, error) {
	kx, ky := kappa*rx, kappa*ry
	cx, cy := center.X, center.Y
	return NewColorPath().SetColor(c).
		Begin(geom.Pt(cx+rx, cy)).
		CubicBezierTo(geom.Pt(cx+rx, cy+ky), geom.Pt(cx+kx, cy+ry), geom.Pt(cx, cy+ry)).
		CubicBezierTo(geom.Pt(cx-kx, cy+ry), geom.Pt(cx-rx, cy+ky), geom.Pt(cx-rx, cy)).
		CubicBezierTo(geom.Pt(cx-rx, cy-ky), geom.Pt(cx-kx, cy-ry), geom.Pt(cx, cy-ry)).
		CubicBezierTo(geom.Pt(cx+kx, cy-ry), geom.Pt(cx+rx, cy-ky), geom.Pt(cx+rx, cy)).
		End(true).
		Build()
}

// PolygonPath returns the closed polygon through points.
func PolygonPath(points []geom.Point, c colors.Color) (*ColorPath, error) {
	b := NewColorPath().SetColor(c)
	for i, p := range points {
		if i == 0 {
			b.Begin(p)
			continue
		}
		b.LineTo(p)
	}
	if len(points) > 0 {
		b.End(true)
	}
	return b.Build()
}

// LinePath returns an open path from start to end, meant for stroking.
func LinePath(start, end geom.Point, c colors.Color) (*ColorPath, error) {
	return NewColorPath().SetColor(c).Begin(start).LineTo(end).End(false).Build()
}

// ArcPath returns an open arc from start to end bulging towards
// end.Sub(start).Perp(). A radius of 0 gives a straight line and a radius of
// half the chord length a half circle; larger radii flatten the arc.
func ArcPath(start, end geom.Point, radius float32, c colors.Color) (*ColorPath, error) {
	chord := end.Sub(start)
	half := chord.Length() / 2
	if radius <= 0 || half == 0 {
		return LinePath(start, end, c)
	}
	radius = max(radius, half)
	mid := start.Lerp(end, 0.5)
	// Distance from the chord midpoint to the circle center.
	d := float32(math.Sqrt(float64(radius*radius - half*half)))
	n := chord.Normalize().Perp()
	center := mid.Add(n.Scale(-d))

	a0 := math.Atan2(float64(start.Y-center.Y), float64(start.X-center.X))
	// Sweeping negatively from start takes the short way round through +n.
	sweep := -2 * math.Asin(float64(min(half/radius, 1)))

	b := NewColorPath().SetColor(c).Begin(start)
	segs := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(segs)
	for i := 0; i < segs; i++ {
		arcSegment(b, center, radius, a0+float64(i)*step, a0+float64(i+1)*step)
	}
	return b.End(false).Build()
}

func arcSegment(b *ColorPathBuilder, c geom.Point, r float32, a0, a1 float64) {
	k := 4.0 / 3.0 * math.Tan((a1-a0)/4)
	rf := float64(r)
	s0, c0 := math.Sincos(a0)
	s1, c1 := math.Sincos(a1)
	p1 := geom.Pt(c.X+float32(rf*(c0-k*s0)), c.Y+float32(rf*(s0+k*c0)))
	p2 := geom.Pt(c.X+float32(rf*(c1+k*s1)), c.Y+float32(rf*(s1-k*c1)))
	p3 := geom.Pt(c.X+float32(rf*c1), c.Y+float32(rf*s1))
	b.CubicBezierTo(p1, p2, p3)
}
