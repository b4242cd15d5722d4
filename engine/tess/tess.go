package tess

import (
	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/path"
	"github.com/hubastard/xenon/engine/render"
)

// FillColorPath triangulates the interior of p. Every sub-path is treated as
// closed.
func FillColorPath(p *path.ColorPath, bounds geom.Box, opts FillOptions) (render.Buffers[render.ColorVertex], error) {
	m, err := fill("fill color path", flatten(&p.Path, tolerance(opts.Tolerance)))
	if err != nil {
		return render.Buffers[render.ColorVertex]{}, err
	}
	return convert("fill color path", m, bounds, colorVertex)
}

// StrokeColorPath triangulates the outline of p.
func StrokeColorPath(p *path.ColorPath, bounds geom.Box, opts StrokeOptions) (render.Buffers[render.ColorVertex], error) {
	m, err := stroke("stroke color path", flatten(&p.Path, tolerance(opts.Tolerance)), opts)
	if err != nil {
		return render.Buffers[render.ColorVertex]{}, err
	}
	return convert("stroke color path", m, bounds, colorVertex)
}

// FillTexturePath triangulates the interior of p, carrying UVs.
func FillTexturePath(p *path.TexturePath, bounds geom.Box, opts FillOptions) (render.Buffers[render.TextureVertex], error) {
	m, err := fill("fill texture path", flatten(&p.Path, tolerance(opts.Tolerance)))
	if err != nil {
		return render.Buffers[render.TextureVertex]{}, err
	}
	return convert("fill texture path", m, bounds, textureVertex)
}

// StrokeTexturePath triangulates the outline of p, carrying UVs.
func StrokeTexturePath(p *path.TexturePath, bounds geom.Box, opts StrokeOptions) (render.Buffers[render.TextureVertex], error) {
	m, err := stroke("stroke texture path", flatten(&p.Path, tolerance(opts.Tolerance)), opts)
	if err != nil {
		return render.Buffers[render.TextureVertex]{}, err
	}
	return convert("stroke texture path", m, bounds, textureVertex)
}

// FillColorRect emits the two triangles covering rect without going through
// the path machinery.
func FillColorRect(rect geom.Box, c colors.Color, bounds geom.Box) (render.Buffers[render.ColorVertex], error) {
	if rect.IsEmpty() {
		return render.Buffers[render.ColorVertex]{}, errorf("fill color rect", "empty rectangle %v", rect)
	}
	m := mesh{
		verts: []vertex{
			{p: rect.Min, a: c},
			{p: geom.Pt(rect.Max.X, rect.Min.Y), a: c},
			{p: rect.Max, a: c},
			{p: geom.Pt(rect.Min.X, rect.Max.Y), a: c},
		},
		idx: []int{0, 1, 2, 0, 2, 3},
	}
	return convert("fill color rect", m, bounds, colorVertex)
}

// StrokeColorRect outlines rect.
func StrokeColorRect(rect geom.Box, c colors.Color, bounds geom.Box, opts StrokeOptions) (render.Buffers[render.ColorVertex], error) {
	p, err := path.RectPath(rect, c)
	if err != nil {
		return render.Buffers[render.ColorVertex]{}, err
	}
	return StrokeColorPath(p, bounds, opts)
}

func colorVertex(pos [2]float32, a [4]float32) render.ColorVertex {
	return render.ColorVertex{Position: pos, Color: a}
}

func textureVertex(pos [2]float32, a [4]float32) render.TextureVertex {
	return render.TextureVertex{Position: pos, UV: [2]float32{a[0], a[1]}}
}

// convert offsets every vertex by the bounds origin, clamps it into bounds
// and narrows indices to 16 bits.
func convert[V any](op string, m mesh, bounds geom.Box, mk func([2]float32, [4]float32) V) (render.Buffers[V], error) {
	if len(m.verts) > render.MaxIndexedVertices {
		return render.Buffers[V]{}, errorf(op, "%d vertices exceed the 16-bit index range", len(m.verts))
	}
	out := render.Buffers[V]{
		Vertices: make([]V, len(m.verts)),
		Indices:  make([]uint16, len(m.idx)),
	}
	origin := bounds.Min.ToVector()
	for i, v := range m.verts {
		p := v.p.Add(origin).Clamp(bounds)
		out.Vertices[i] = mk([2]float32{p.X, p.Y}, v.a)
	}
	for i, idx := range m.idx {
		out.Indices[i] = uint16(idx)
	}
	return out, nil
}
