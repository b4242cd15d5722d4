package tess

import (
	"math"
	"sort"
)

// Ear clipping over a doubly linked ring, with holes merged into their outer
// ring through bridge edges. Coordinates are float64 to keep the orientation
// predicates stable.

type ring struct {
	i          int
	x, y       float64
	prev, next *ring
	steiner    bool
}

// earcut triangulates the polygon whose outer ring is pts[0:holes[0]] and
// whose holes start at each holes[k]. It returns indices into pts.
func earcut(xs, ys []float64, holes []int) []int {
	outerLen := len(xs)
	if len(holes) > 0 {
		outerLen = holes[0]
	}
	outer := linkedRing(xs, ys, 0, outerLen, true)
	var tris []int
	if outer == nil || outer.next == outer.prev {
		return tris
	}
	if len(holes) > 0 {
		outer = eliminateHoles(xs, ys, holes, outer)
	}
	earcutLinked(outer, &tris, 0)
	return tris
}

func linkedRing(xs, ys []float64, start, end int, clockwise bool) *ring {
	var last *ring
	if clockwise == (signedArea(xs, ys, start, end) > 0) {
		for i := start; i < end; i++ {
			last = insertRing(i, xs[i], ys[i], last)
		}
	} else {
		for i := end - 1; i >= start; i-- {
			last = insertRing(i, xs[i], ys[i], last)
		}
	}
	if last != nil && equalPts(last, last.next) {
		removeRing(last)
		last = last.next
	}
	return last
}

func filterPoints(start, end *ring) *ring {
	if start == nil {
		return start
	}
	if end == nil {
		end = start
	}
	p := start
	for {
		again := false
		if !p.steiner && (equalPts(p, p.next) || area(p.prev, p, p.next) == 0) {
			removeRing(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

func earcutLinked(ear *ring, tris *[]int, pass int) {
	if ear == nil {
		return
	}
	stop := ear
	for ear.prev != ear.next {
		prev, next := ear.prev, ear.next
		if isEar(ear) {
			*tris = append(*tris, prev.i, ear.i, next.i)
			removeRing(ear)
			ear = next.next
			stop = next.next
			continue
		}
		ear = next
		if ear == stop {
			switch pass {
			case 0:
				earcutLinked(filterPoints(ear, nil), tris, 1)
			case 1:
				ear = cureLocalIntersections(filterPoints(ear, nil), tris)
				earcutLinked(ear, tris, 2)
			case 2:
				splitEarcut(ear, tris)
			}
			break
		}
	}
}

func isEar(ear *ring) bool {
	a, b, c := ear.prev, ear, ear.next
	if area(a, b, c) >= 0 {
		return false
	}
	for p := ear.next.next; p != ear.prev; p = p.next {
		if pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) && area(p.prev, p, p.next) >= 0 {
			return false
		}
	}
	return true
}

func cureLocalIntersections(start *ring, tris *[]int) *ring {
	p := start
	for {
		a, b := p.prev, p.next.next
		if !equalPts(a, b) && intersects(a, p, p.next, b) && locallyInside(a, b) && locallyInside(b, a) {
			*tris = append(*tris, a.i, p.i, b.i)
			removeRing(p)
			removeRing(p.next)
			p = b
			start = b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filterPoints(p, nil)
}

func splitEarcut(start *ring, tris *[]int) {
	a := start
	for {
		for b := a.next.next; b != a.prev; b = b.next {
			if a.i != b.i && isValidDiagonal(a, b) {
				c := splitRing(a, b)
				a = filterPoints(a, a.next)
				c = filterPoints(c, c.next)
				earcutLinked(a, tris, 0)
				earcutLinked(c, tris, 0)
				return
			}
		}
		a = a.next
		if a == start {
			return
		}
	}
}

func eliminateHoles(xs, ys []float64, holes []int, outer *ring) *ring {
	queue := make([]*ring, 0, len(holes))
	for k, start := range holes {
		end := len(xs)
		if k < len(holes)-1 {
			end = holes[k+1]
		}
		list := linkedRing(xs, ys, start, end, false)
		if list == nil {
			continue
		}
		if list == list.next {
			list.steiner = true
		}
		queue = append(queue, leftmost(list))
	}
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].x < queue[j].x })
	for _, h := range queue {
		outer = eliminateHole(h, outer)
	}
	return outer
}

func eliminateHole(hole, outer *ring) *ring {
	bridge := findHoleBridge(hole, outer)
	if bridge == nil {
		return outer
	}
	reverse := splitRing(bridge, hole)
	filterPoints(reverse, reverse.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge finds an outer ring vertex visible from the hole's leftmost
// point by casting a ray to the left.
func findHoleBridge(hole, outer *ring) *ring {
	hx, hy := hole.x, hole.y
	qx := math.Inf(-1)
	var m *ring
	p := outer
	for {
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				m = p
				if p.next.x < p.x {
					m = p.next
				}
				if x == hx {
					return m
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}
	if m == nil {
		return nil
	}

	stop := m
	mx, my := m.x, m.y
	tanMin := math.Inf(1)
	p = m
	for {
		ax, cx := qx, hx
		if hy < my {
			ax, cx = hx, qx
		}
		if hx >= p.x && p.x >= mx && hx != p.x && pointInTriangle(ax, hy, mx, my, cx, hy, p.x, p.y) {
			tan := math.Abs(hy-p.y) / (hx - p.x)
			if locallyInside(p, hole) &&
				(tan < tanMin || (tan == tanMin && (p.x > m.x || (p.x == m.x && sectorContainsSector(m, p))))) {
				m = p
				tanMin = tan
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

func sectorContainsSector(m, p *ring) bool {
	return area(m.prev, m, p.prev) < 0 && area(p.next, m, m.next) < 0
}

func leftmost(start *ring) *ring {
	p, left := start, start
	for {
		if p.x < left.x || (p.x == left.x && p.y < left.y) {
			left = p
		}
		p = p.next
		if p == start {
			return left
		}
	}
}

func pointInTriangle(ax, ay, bx, by, cx, cy, px, py float64) bool {
	return (cx-px)*(ay-py) >= (ax-px)*(cy-py) &&
		(ax-px)*(by-py) >= (bx-px)*(ay-py) &&
		(bx-px)*(cy-py) >= (cx-px)*(by-py)
}

func isValidDiagonal(a, b *ring) bool {
	if a.next.i == b.i || a.prev.i == b.i || intersectsPolygon(a, b) {
		return false
	}
	if locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(area(a.prev, a, b.prev) != 0 || area(a, b.prev, b) != 0) {
		return true
	}
	return equalPts(a, b) && area(a.prev, a, a.next) > 0 && area(b.prev, b, b.next) > 0
}

func area(p, q, r *ring) float64 {
	return (q.y-p.y)*(r.x-q.x) - (q.x-p.x)*(r.y-q.y)
}

func equalPts(a, b *ring) bool { return a.x == b.x && a.y == b.y }

func intersects(p1, q1, p2, q2 *ring) bool {
	o1 := sign(area(p1, q1, p2))
	o2 := sign(area(p1, q1, q2))
	o3 := sign(area(p2, q2, p1))
	o4 := sign(area(p2, q2, q1))
	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && onSegment(p1, p2, q1)) ||
		(o2 == 0 && onSegment(p1, q2, q1)) ||
		(o3 == 0 && onSegment(p2, p1, q2)) ||
		(o4 == 0 && onSegment(p2, q1, q2))
}

func onSegment(p, q, r *ring) bool {
	return q.x <= math.Max(p.x, r.x) && q.x >= math.Min(p.x, r.x) &&
		q.y <= math.Max(p.y, r.y) && q.y >= math.Min(p.y, r.y)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func intersectsPolygon(a, b *ring) bool {
	p := a
	for {
		if p.i != a.i && p.next.i != a.i && p.i != b.i && p.next.i != b.i && intersects(p, p.next, a, b) {
			return true
		}
		p = p.next
		if p == a {
			return false
		}
	}
}

func locallyInside(a, b *ring) bool {
	if area(a.prev, a, a.next) < 0 {
		return area(a, b, a.next) >= 0 && area(a, a.prev, b) >= 0
	}
	return area(a, b, a.prev) < 0 || area(a, a.next, b) < 0
}

func middleInside(a, b *ring) bool {
	inside := false
	px, py := (a.x+b.x)/2, (a.y+b.y)/2
	p := a
	for {
		if (p.y > py) != (p.next.y > py) && p.next.y != p.y &&
			px < (p.next.x-p.x)*(py-p.y)/(p.next.y-p.y)+p.x {
			inside = !inside
		}
		p = p.next
		if p == a {
			return inside
		}
	}
}

// splitRing links a to b with a diagonal, splitting the ring in two. Both
// endpoints are duplicated so each half stays a closed ring.
func splitRing(a, b *ring) *ring {
	a2 := &ring{i: a.i, x: a.x, y: a.y}
	b2 := &ring{i: b.i, x: b.x, y: b.y}
	an, bp := a.next, b.prev

	a.next = b
	b.prev = a

	a2.next = an
	an.prev = a2

	b2.next = a2
	a2.prev = b2

	bp.next = b2
	b2.prev = bp
	return b2
}

func insertRing(i int, x, y float64, last *ring) *ring {
	p := &ring{i: i, x: x, y: y}
	if last == nil {
		p.prev = p
		p.next = p
		return p
	}
	p.next = last.next
	p.prev = last
	last.next.prev = p
	last.next = p
	return p
}

func removeRing(p *ring) {
	p.next.prev = p.prev
	p.prev.next = p.next
}

func signedArea(xs, ys []float64, start, end int) float64 {
	var sum float64
	j := end - 1
	for i := start; i < end; i++ {
		sum += (xs[j] - xs[i]) * (ys[i] + ys[j])
		j = i
	}
	return sum
}
