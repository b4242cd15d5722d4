package tess_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/path"
	"github.com/hubastard/xenon/engine/render"
	"github.com/hubastard/xenon/engine/tess"
)

var world = geom.Rect(0, 0, 1000, 1000)

func meshArea[V any](b render.Buffers[V], pos func(V) [2]float32) float64 {
	var sum float64
	for i := 0; i+2 < len(b.Indices); i += 3 {
		a, c, d := pos(b.Vertices[b.Indices[i]]), pos(b.Vertices[b.Indices[i+1]]), pos(b.Vertices[b.Indices[i+2]])
		cross := float64(c[0]-a[0])*float64(d[1]-a[1]) - float64(c[1]-a[1])*float64(d[0]-a[0])
		sum += math.Abs(cross) / 2
	}
	return sum
}

func colorArea(b render.Buffers[render.ColorVertex]) float64 {
	return meshArea(b, func(v render.ColorVertex) [2]float32 { return v.Position })
}

func checkValid[V any](t *testing.T, b render.Buffers[V]) {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Fatalf("invalid buffers: %v", err)
	}
	if b.Empty() {
		t.Fatal("no triangles")
	}
}

// mustPath wraps a path constructor's results: mustPath(t)(path.RectPath(...)).
func mustPath(t *testing.T) func(*path.ColorPath, error) *path.ColorPath {
	return func(p *path.ColorPath, err error) *path.ColorPath {
		t.Helper()
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return p
	}
}

func approx(frac float64) cmp.Option { return cmpopts.EquateApprox(frac, 1e-4) }

func TestFillColorRect(t *testing.T) {
	r := geom.Rect(10, 20, 110, 70)
	buf, err := tess.FillColorRect(r, colors.Red, world)
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, buf)
	if diff := cmp.Diff(5000.0, colorArea(buf), approx(0)); diff != "" {
		t.Errorf("area mismatch (-want +got):\n%s", diff)
	}
	for _, v := range buf.Vertices {
		if v.Color != [4]float32(colors.Red) {
			t.Errorf("vertex color = %v, want red", v.Color)
		}
	}
}

func TestRectPathMatchesDirectRect(t *testing.T) {
	r := geom.Rect(5, 5, 45, 25)
	direct, err := tess.FillColorRect(r, colors.Green, world)
	if err != nil {
		t.Fatal(err)
	}
	p := mustPath(t)(path.RectPath(r, colors.Green))
	viaPath, err := tess.FillColorPath(p, world, tess.DefaultFill())
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, viaPath)
	if diff := cmp.Diff(colorArea(direct), colorArea(viaPath), approx(1e-6)); diff != "" {
		t.Errorf("area mismatch (-direct +path):\n%s", diff)
	}
	if diff := cmp.Diff(bbox(direct), bbox(viaPath)); diff != "" {
		t.Errorf("bbox mismatch (-direct +path):\n%s", diff)
	}
}

func bbox(b render.Buffers[render.ColorVertex]) geom.Box {
	box := geom.Rect(math.MaxFloat32, math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32)
	for _, v := range b.Vertices {
		p := geom.Pt(v.Position[0], v.Position[1])
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

func TestBoundsOffsetAndClamp(t *testing.T) {
	bounds := geom.Rect(100, 200, 150, 230)

	buf, err := tess.FillColorRect(geom.Rect(0, 0, 10, 10), colors.Blue, bounds)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(geom.Rect(100, 200, 110, 210), bbox(buf)); diff != "" {
		t.Errorf("offset bbox (-want +got):\n%s", diff)
	}

	// Overflowing geometry is squashed onto the bounds edges.
	buf, err = tess.FillColorRect(geom.Rect(-20, -20, 500, 500), colors.Blue, bounds)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(bounds, bbox(buf)); diff != "" {
		t.Errorf("clamped bbox (-want +got):\n%s", diff)
	}

	p := mustPath(t)(path.EllipsePath(geom.Pt(25, 15), 40, 40, colors.Blue))
	sbuf, err := tess.StrokeColorPath(p, bounds, tess.DefaultStroke().WithWidth(6).WithJoin(tess.JoinRound))
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range sbuf.Vertices {
		x, y := v.Position[0], v.Position[1]
		if x < bounds.Min.X || x > bounds.Max.X || y < bounds.Min.Y || y > bounds.Max.Y {
			t.Fatalf("vertex %v escapes %v", v.Position, bounds)
		}
	}
}

func TestDegeneratePaths(t *testing.T) {
	empty := mustPath(t)(path.NewColorPath().Build())
	twoPoints := mustPath(t)(path.NewColorPath().Begin(geom.Pt(0, 0)).LineTo(geom.Pt(10, 0)).End(true).Build())
	collinear := mustPath(t)(path.NewColorPath().
		Begin(geom.Pt(0, 0)).LineTo(geom.Pt(5, 5)).LineTo(geom.Pt(10, 10)).End(true).Build())
	point := mustPath(t)(path.NewColorPath().Begin(geom.Pt(3, 3)).LineTo(geom.Pt(3, 3)).End(false).Build())
	line := mustPath(t)(path.LinePath(geom.Pt(0, 0), geom.Pt(10, 0), colors.Black))

	tests := []struct {
		name string
		run  func() error
	}{
		{"fill empty", func() error { _, err := tess.FillColorPath(empty, world, tess.DefaultFill()); return err }},
		{"fill two points", func() error { _, err := tess.FillColorPath(twoPoints, world, tess.DefaultFill()); return err }},
		{"fill zero area", func() error { _, err := tess.FillColorPath(collinear, world, tess.DefaultFill()); return err }},
		{"stroke empty", func() error { _, err := tess.StrokeColorPath(empty, world, tess.DefaultStroke()); return err }},
		{"stroke single point", func() error { _, err := tess.StrokeColorPath(point, world, tess.DefaultStroke()); return err }},
		{"stroke zero width", func() error {
			_, err := tess.StrokeColorPath(line, world, tess.DefaultStroke().WithWidth(0))
			return err
		}},
		{"stroke negative width", func() error {
			_, err := tess.StrokeColorPath(line, world, tess.DefaultStroke().WithWidth(-2))
			return err
		}},
		{"rect empty", func() error { _, err := tess.FillColorRect(geom.Rect(5, 5, 5, 20), colors.Red, world); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tess.ErrTessellation) {
				t.Fatalf("err = %v, want ErrTessellation", err)
			}
			var te *tess.Error
			if !errors.As(err, &te) || te.Op == "" || te.Reason == "" {
				t.Fatalf("err = %#v, want populated *tess.Error", err)
			}
		})
	}
}

func TestFillCurves(t *testing.T) {
	const r = 50
	p := mustPath(t)(path.EllipsePath(geom.Pt(100, 100), r, r, colors.Cyan))
	buf, err := tess.FillColorPath(p, world, tess.DefaultFill())
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, buf)
	if diff := cmp.Diff(math.Pi*r*r, colorArea(buf), approx(0.01)); diff != "" {
		t.Errorf("circle area (-want +got):\n%s", diff)
	}
	if len(buf.Vertices) <= 8 {
		t.Errorf("curves were not subdivided: %d vertices", len(buf.Vertices))
	}
}

func TestFillWithHole(t *testing.T) {
	// Outer and inner squares wound in opposite directions.
	p := mustPath(t)(path.NewColorPath().
		Begin(geom.Pt(0, 0)).LineTo(geom.Pt(10, 0)).LineTo(geom.Pt(10, 10)).LineTo(geom.Pt(0, 10)).End(true).
		Begin(geom.Pt(2, 2)).LineTo(geom.Pt(2, 8)).LineTo(geom.Pt(8, 8)).LineTo(geom.Pt(8, 2)).End(true).
		Build())
	buf, err := tess.FillColorPath(p, world, tess.DefaultFill())
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, buf)
	if diff := cmp.Diff(64.0, colorArea(buf), approx(1e-6)); diff != "" {
		t.Errorf("area (-want +got):\n%s", diff)
	}
}

func TestFillDisjointContours(t *testing.T) {
	p := mustPath(t)(path.NewColorPath().
		Begin(geom.Pt(0, 0)).LineTo(geom.Pt(4, 0)).LineTo(geom.Pt(4, 4)).LineTo(geom.Pt(0, 4)).End(true).
		Begin(geom.Pt(10, 0)).LineTo(geom.Pt(13, 0)).LineTo(geom.Pt(13, 3)).LineTo(geom.Pt(10, 3)).End(false).
		Build())
	buf, err := tess.FillColorPath(p, world, tess.DefaultFill())
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, buf)
	if diff := cmp.Diff(25.0, colorArea(buf), approx(1e-6)); diff != "" {
		t.Errorf("area (-want +got):\n%s", diff)
	}
}

func TestFillConcave(t *testing.T) {
	// L shape: 10x10 minus a 5x5 corner.
	p := mustPath(t)(path.PolygonPath([]geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 5), geom.Pt(5, 5), geom.Pt(5, 10), geom.Pt(0, 10),
	}, colors.Magenta))
	buf, err := tess.FillColorPath(p, world, tess.DefaultFill())
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, buf)
	if got := len(buf.Indices) / 3; got != 4 {
		t.Errorf("triangles = %d, want 4", got)
	}
	if diff := cmp.Diff(75.0, colorArea(buf), approx(1e-6)); diff != "" {
		t.Errorf("area (-want +got):\n%s", diff)
	}
}

// shoelace is the unsigned area of a closed polygon.
func shoelace(pts []geom.Point) float64 {
	var sum float64
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return math.Abs(sum) / 2
}

func inside(t *testing.T, buf render.Buffers[render.ColorVertex], bounds geom.Box) {
	t.Helper()
	for i, v := range buf.Vertices {
		p := v.Position
		if p[0] < bounds.Min.X || p[0] > bounds.Max.X || p[1] < bounds.Min.Y || p[1] > bounds.Max.Y {
			t.Fatalf("vertex %d at %v outside %v", i, p, bounds)
		}
	}
}

func TestFillRandomStarShapedPolygons(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	center := geom.Pt(500, 500)
	for i := 0; i < 200; i++ {
		// one jittered vertex per sector keeps every angular gap under pi,
		// so the polygon is star-shaped around center
		n := 4 + rng.IntN(40)
		sector := 2 * math.Pi / float64(n)
		pts := make([]geom.Point, 0, n)
		for j := range n {
			a := (float64(j) + 0.9*rng.Float64()) * sector
			r := 20 + rng.Float64()*380
			s, c := math.Sincos(a)
			pts = append(pts, geom.Pt(center.X+float32(r*c), center.Y+float32(r*s)))
		}
		if shoelace(pts) < 1 {
			continue
		}

		buf, err := tess.FillColorPath(mustPath(t)(path.PolygonPath(pts, colors.White)), world, tess.DefaultFill())
		if err != nil {
			t.Fatalf("polygon %d (%d points): %v", i, n, err)
		}
		checkValid(t, buf)
		inside(t, buf, world)
		if diff := cmp.Diff(shoelace(pts), colorArea(buf), cmpopts.EquateApprox(1e-3, 1e-2)); diff != "" {
			t.Errorf("polygon %d area (-want +got):\n%s", i, diff)
		}
	}
}

func TestFillRandomPolygonsStayValid(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 300; i++ {
		n := 3 + rng.IntN(30)
		pts := make([]geom.Point, n)
		for j := range pts {
			pts[j] = geom.Pt(float32(rng.Float64()*1000), float32(rng.Float64()*1000))
		}

		buf, err := tess.FillColorPath(mustPath(t)(path.PolygonPath(pts, colors.White)), world, tess.DefaultFill())
		if err != nil {
			// self-intersecting input may be rejected, but only as a tessellation error
			if !errors.Is(err, tess.ErrTessellation) {
				t.Fatalf("polygon %d: err = %v, want ErrTessellation", i, err)
			}
			continue
		}
		if err := buf.Validate(); err != nil {
			t.Fatalf("polygon %d: %v", i, err)
		}
		inside(t, buf, world)
	}
}

func TestStrokeCaps(t *testing.T) {
	line := mustPath(t)(path.LinePath(geom.Pt(10, 10), geom.Pt(20, 10), colors.Black))
	tests := []struct {
		cap  tess.LineCap
		want float64
		frac float64
	}{
		{tess.CapButt, 20, 1e-6},
		{tess.CapSquare, 24, 1e-6},
		{tess.CapRound, 20 + math.Pi, 0.03},
	}
	for _, tt := range tests {
		buf, err := tess.StrokeColorPath(line, world, tess.DefaultStroke().WithWidth(2).WithCap(tt.cap))
		if err != nil {
			t.Fatalf("cap %d: %v", tt.cap, err)
		}
		checkValid(t, buf)
		if diff := cmp.Diff(tt.want, colorArea(buf), approx(tt.frac)); diff != "" {
			t.Errorf("cap %d area (-want +got):\n%s", tt.cap, diff)
		}
	}
}

func TestStrokeJoins(t *testing.T) {
	square := mustPath(t)(path.RectPath(geom.Rect(10, 10, 20, 20), colors.Black))
	// Four 10x2 quads plus one wedge per corner.
	tests := []struct {
		join tess.LineJoin
		want float64
		frac float64
	}{
		{tess.JoinMiter, 80 + 4*1, 1e-6},
		{tess.JoinBevel, 80 + 4*0.5, 1e-6},
		{tess.JoinRound, 80 + math.Pi, 0.03},
	}
	for _, tt := range tests {
		buf, err := tess.StrokeColorPath(square, world, tess.DefaultStroke().WithWidth(2).WithJoin(tt.join))
		if err != nil {
			t.Fatalf("join %d: %v", tt.join, err)
		}
		checkValid(t, buf)
		if diff := cmp.Diff(tt.want, colorArea(buf), approx(tt.frac)); diff != "" {
			t.Errorf("join %d area (-want +got):\n%s", tt.join, diff)
		}
	}
}

func TestStrokeMiterLimit(t *testing.T) {
	// A sharp spike: the miter ratio far exceeds the limit, so it bevels.
	p := mustPath(t)(path.NewColorPath().
		Begin(geom.Pt(0, 0)).LineTo(geom.Pt(100, 2)).LineTo(geom.Pt(0, 4)).End(false).Build())
	miter, err := tess.StrokeColorPath(p, world, tess.DefaultStroke().WithWidth(2).WithMiterLimit(1000))
	if err != nil {
		t.Fatal(err)
	}
	bevel, err := tess.StrokeColorPath(p, world, tess.DefaultStroke().WithWidth(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(bevel.Vertices) >= len(miter.Vertices) {
		t.Errorf("limited join has %d vertices, unlimited %d; want fewer", len(bevel.Vertices), len(miter.Vertices))
	}
}

func TestTexturePathCarriesUV(t *testing.T) {
	p, err := path.NewTexturePath(3).
		Begin(geom.Pt(0, 0), geom.Pt(0, 0)).
		LineTo(geom.Pt(8, 0), geom.Pt(1, 0)).
		LineTo(geom.Pt(8, 8), geom.Pt(1, 1)).
		LineTo(geom.Pt(0, 8), geom.Pt(0, 1)).
		End(true).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	buf, err := tess.FillTexturePath(p, geom.Rect(4, 4, 100, 100), tess.DefaultFill())
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, buf)
	want := map[[2]float32][2]float32{
		{4, 4}: {0, 0}, {12, 4}: {1, 0}, {12, 12}: {1, 1}, {4, 12}: {0, 1},
	}
	for _, v := range buf.Vertices {
		if uv, ok := want[v.Position]; !ok || uv != v.UV {
			t.Errorf("vertex %v has uv %v, want %v", v.Position, v.UV, uv)
		}
	}

	sbuf, err := tess.StrokeTexturePath(p, world, tess.DefaultStroke().WithWidth(1))
	if err != nil {
		t.Fatal(err)
	}
	checkValid(t, sbuf)
}

func TestTooManyVertices(t *testing.T) {
	b := path.NewColorPath().Begin(geom.Pt(0, 0))
	for i := 1; i < 70000; i++ {
		b.LineTo(geom.Pt(float32(i%500), float32(i/500+(i%2))))
	}
	p := mustPath(t)(b.End(false).Build())
	_, err := tess.StrokeColorPath(p, world, tess.DefaultStroke())
	if !errors.Is(err, tess.ErrTessellation) {
		t.Fatalf("err = %v, want ErrTessellation", err)
	}
}
