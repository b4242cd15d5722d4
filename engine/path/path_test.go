package path_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/path"
)

func TestColorPathRecordsCurrentColor(t *testing.T) {
	p, err := path.NewColorPath().
		Begin(geom.Pt(0, 0)).
		SetColor(colors.Red).LineTo(geom.Pt(10, 0)).
		SetColor(colors.Blue).QuadraticBezierTo(geom.Pt(10, 10), geom.Pt(0, 10)).
		End(true).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if p.AttrWidth() != path.ColorAttrs {
		t.Errorf("AttrWidth() = %d", p.AttrWidth())
	}
	want := []path.SubPath{{
		Closed: true,
		Segments: []path.Segment{
			{Verb: path.VerbBegin, To: geom.Pt(0, 0), Attrs: colors.Black[:]},
			{Verb: path.VerbLine, To: geom.Pt(10, 0), Attrs: colors.Red[:]},
			{Verb: path.VerbQuadratic, Ctrl1: geom.Pt(10, 10), To: geom.Pt(0, 10), Attrs: colors.Blue[:]},
		},
	}}
	if diff := cmp.Diff(want, p.SubPaths()); diff != "" {
		t.Errorf("sub-paths (-want +got):\n%s", diff)
	}
}

func TestTexturePathRecordsUV(t *testing.T) {
	p, err := path.NewTexturePath(7).
		Begin(geom.Pt(0, 0), geom.Pt(0, 0)).
		CubicBezierTo(geom.Pt(3, 0), geom.Pt(6, 3), geom.Pt(6, 6), geom.Pt(1, 1)).
		End(false).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if p.Texture != 7 || p.AttrWidth() != path.TextureAttrs {
		t.Errorf("texture %d, width %d", p.Texture, p.AttrWidth())
	}
	seg := p.SubPaths()[0].Segments[1]
	if diff := cmp.Diff([]float32{1, 1}, seg.Attrs); diff != "" {
		t.Errorf("uv (-want +got):\n%s", diff)
	}
	if seg.Verb != path.VerbCubic || seg.Ctrl2 != geom.Pt(6, 3) {
		t.Errorf("segment = %+v", seg)
	}
}

func TestBuilderMisuse(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
	}{
		{"line before begin", func() error {
			_, err := path.NewColorPath().LineTo(geom.Pt(1, 1)).Build()
			return err
		}},
		{"begin inside open sub-path", func() error {
			_, err := path.NewColorPath().Begin(geom.Pt(0, 0)).Begin(geom.Pt(1, 1)).End(false).Build()
			return err
		}},
		{"end without begin", func() error {
			_, err := path.NewColorPath().End(true).Build()
			return err
		}},
		{"unended sub-path", func() error {
			_, err := path.NewColorPath().Begin(geom.Pt(0, 0)).LineTo(geom.Pt(1, 0)).Build()
			return err
		}},
		{"texture curve before begin", func() error {
			_, err := path.NewTexturePath(0).QuadraticBezierTo(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(0, 0)).Build()
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); !errors.Is(err, path.ErrBuilder) {
				t.Errorf("err = %v, want ErrBuilder", err)
			}
		})
	}
}

func TestBuildResetsBuilder(t *testing.T) {
	b := path.NewColorPath()
	if _, err := b.LineTo(geom.Pt(1, 1)).Build(); err == nil {
		t.Fatal("expected error")
	}
	p, err := b.Begin(geom.Pt(0, 0)).LineTo(geom.Pt(1, 0)).LineTo(geom.Pt(0, 1)).End(true).Build()
	if err != nil {
		t.Fatalf("reused builder: %v", err)
	}
	if p.AttrWidth() != path.ColorAttrs || len(p.SubPaths()) != 1 {
		t.Errorf("reused builder produced %+v", p)
	}
}

func TestEmptyPath(t *testing.T) {
	p, err := path.NewColorPath().Build()
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsEmpty() {
		t.Error("IsEmpty() = false")
	}
}

func TestShapes(t *testing.T) {
	r := geom.Rect(0, 0, 40, 20)
	tests := []struct {
		name     string
		build    func() (*path.ColorPath, error)
		segments int
		closed   bool
	}{
		{"rect", func() (*path.ColorPath, error) { return path.RectPath(r, colors.Red) }, 4, true},
		{"rounded rect", func() (*path.ColorPath, error) { return path.RoundedRectPath(r, 4, colors.Red) }, 9, true},
		{"rounded rect zero radius", func() (*path.ColorPath, error) { return path.RoundedRectPath(r, 0, colors.Red) }, 4, true},
		{"ellipse", func() (*path.ColorPath, error) { return path.EllipsePath(geom.Pt(5, 5), 5, 3, colors.Red) }, 5, true},
		{"polygon", func() (*path.ColorPath, error) {
			return path.PolygonPath([]geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 3}}, colors.Red)
		}, 3, true},
		{"line", func() (*path.ColorPath, error) { return path.LinePath(geom.Pt(0, 0), geom.Pt(3, 4), colors.Red) }, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.build()
			if err != nil {
				t.Fatal(err)
			}
			sps := p.SubPaths()
			if len(sps) != 1 {
				t.Fatalf("sub-paths = %d", len(sps))
			}
			if got := len(sps[0].Segments); got != tt.segments {
				t.Errorf("segments = %d, want %d", got, tt.segments)
			}
			if sps[0].Closed != tt.closed {
				t.Errorf("closed = %v", sps[0].Closed)
			}
		})
	}
}

func TestArcPathBulgesTowardsPerp(t *testing.T) {
	start, end := geom.Pt(0, 0), geom.Pt(10, 0)
	p, err := path.ArcPath(start, end, 5, colors.White)
	if err != nil {
		t.Fatal(err)
	}
	segs := p.SubPaths()[0].Segments
	last := segs[len(segs)-1].To
	if diff := cmp.Diff(end, last, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("arc end (-want +got):\n%s", diff)
	}
	// Perp of +X is +Y: every control point sits on the +Y side.
	for _, s := range segs[1:] {
		for _, q := range []geom.Point{s.Ctrl1, s.Ctrl2, s.To} {
			if q.Y < -1e-4 {
				t.Errorf("point %v on the wrong side", q)
			}
		}
	}
	mid := segs[len(segs)/2].To
	if len(segs) == 3 && mid.Y < 4.9 {
		t.Errorf("half circle apex = %v, want y≈5", mid)
	}
}
