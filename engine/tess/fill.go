package tess

import (
	"math"
	"sort"
)

// mesh is an indexed triangle list before conversion to a vertex layout.
type mesh struct {
	verts []vertex
	idx   []int
}

func (m *mesh) add(v vertex) int {
	m.verts = append(m.verts, v)
	return len(m.verts) - 1
}

func (m *mesh) tri(a, b, c int) { m.idx = append(m.idx, a, b, c) }

// polygon is an outer contour and the holes it contains.
type polygon struct {
	outer contour
	area  float64
	holes []contour
}

// fill triangulates every contour as implicitly closed. Contours are grouped
// largest first: a contour whose first point lies inside a larger contour of
// opposite winding becomes a hole of the innermost such contour.
func fill(op string, cs []contour) (mesh, error) {
	var m mesh
	if len(cs) == 0 {
		return m, errorf(op, "empty path")
	}
	type ranked struct {
		c    contour
		area float64
	}
	rs := make([]ranked, 0, len(cs))
	for i, c := range cs {
		if len(c.pts) < 3 {
			return m, errorf(op, "contour %d has %d distinct points, need 3", i, len(c.pts))
		}
		a := contourArea(c.pts)
		if a == 0 {
			return m, errorf(op, "contour %d has zero area", i)
		}
		rs = append(rs, ranked{c, a})
	}
	sort.SliceStable(rs, func(i, j int) bool { return math.Abs(rs[i].area) > math.Abs(rs[j].area) })

	var polys []*polygon
	for _, r := range rs {
		var parent *polygon
		for k := len(polys) - 1; k >= 0; k-- {
			p := polys[k]
			if (p.area > 0) != (r.area > 0) && insideContour(p.outer.pts, r.c.pts[0]) {
				parent = p
				break
			}
		}
		if parent != nil {
			parent.holes = append(parent.holes, r.c)
			continue
		}
		polys = append(polys, &polygon{outer: r.c, area: r.area})
	}

	for _, p := range polys {
		if err := p.triangulate(op, &m); err != nil {
			return mesh{}, err
		}
	}
	return m, nil
}

func (p *polygon) triangulate(op string, m *mesh) error {
	n := len(p.outer.pts)
	for _, h := range p.holes {
		n += len(h.pts)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	base := len(m.verts)
	push := func(c contour) {
		for _, v := range c.pts {
			xs = append(xs, float64(v.p.X))
			ys = append(ys, float64(v.p.Y))
			m.add(v)
		}
	}
	push(p.outer)
	var holes []int
	for _, h := range p.holes {
		holes = append(holes, len(xs))
		push(h)
	}
	tris := earcut(xs, ys, holes)
	if len(tris) == 0 {
		return errorf(op, "triangulation produced no triangles")
	}
	for i := 0; i < len(tris); i += 3 {
		m.tri(base+tris[i], base+tris[i+1], base+tris[i+2])
	}
	return nil
}

// contourArea is the shoelace signed area.
func contourArea(pts []vertex) float64 {
	var sum float64
	j := len(pts) - 1
	for i := range pts {
		sum += float64(pts[j].p.X)*float64(pts[i].p.Y) - float64(pts[i].p.X)*float64(pts[j].p.Y)
		j = i
	}
	return sum / 2
}

// insideContour is an even-odd crossing test.
func insideContour(pts []vertex, v vertex) bool {
	x, y := float64(v.p.X), float64(v.p.Y)
	in := false
	j := len(pts) - 1
	for i := range pts {
		xi, yi := float64(pts[i].p.X), float64(pts[i].p.Y)
		xj, yj := float64(pts[j].p.X), float64(pts[j].p.Y)
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
		j = i
	}
	return in
}
