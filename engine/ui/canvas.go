package ui

import (
	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/path"
	"github.com/hubastard/xenon/engine/render"
	"github.com/hubastard/xenon/engine/tess"
)

// Canvas is a renderer plus the region a widget may draw into. Coordinates
// passed to its drawing methods are local to the region; anything outside it
// is clamped onto its edges.
//
// A Canvas is cheap and built per widget per frame; only the renderer behind
// it is shared.
type Canvas struct {
	r      render.Renderer
	bounds geom.Box
	fill   tess.FillOptions
}

func NewCanvas(r render.Renderer, bounds geom.Box) *Canvas {
	return &Canvas{r: r, bounds: bounds, fill: tess.DefaultFill()}
}

// Bounds returns the region in window coordinates.
func (c *Canvas) Bounds() geom.Box { return c.bounds }

func (c *Canvas) Renderer() render.Renderer { return c.r }

// Size is the extent of the drawable region.
func (c *Canvas) Size() geom.Size { return c.bounds.Size() }

// Local returns the whole region in local coordinates.
func (c *Canvas) Local() geom.Box { return geom.BoxFromSize(geom.Point{}, c.bounds.Size()) }

func (c *Canvas) FillPath(p *path.ColorPath) error {
	buf, err := tess.FillColorPath(p, c.bounds, c.fill)
	if err != nil {
		return err
	}
	c.r.AddColoredObject(buf)
	return nil
}

func (c *Canvas) StrokePath(p *path.ColorPath, opts tess.StrokeOptions) error {
	buf, err := tess.StrokeColorPath(p, c.bounds, opts)
	if err != nil {
		return err
	}
	c.r.AddColoredObject(buf)
	return nil
}

func (c *Canvas) FillTexturePath(p *path.TexturePath) error {
	buf, err := tess.FillTexturePath(p, c.bounds, c.fill)
	if err != nil {
		return err
	}
	c.r.AddTexturedObject(p.Texture, buf)
	return nil
}

func (c *Canvas) StrokeTexturePath(p *path.TexturePath, opts tess.StrokeOptions) error {
	buf, err := tess.StrokeTexturePath(p, c.bounds, opts)
	if err != nil {
		return err
	}
	c.r.AddTexturedObject(p.Texture, buf)
	return nil
}

func (c *Canvas) FillRect(r geom.Box, col colors.Color) error {
	buf, err := tess.FillColorRect(r, col, c.bounds)
	if err != nil {
		return err
	}
	c.r.AddColoredObject(buf)
	return nil
}

func (c *Canvas) StrokeRect(r geom.Box, col colors.Color, opts tess.StrokeOptions) error {
	buf, err := tess.StrokeColorRect(r, col, c.bounds, opts)
	if err != nil {
		return err
	}
	c.r.AddColoredObject(buf)
	return nil
}

func (c *Canvas) FillRoundedRect(r geom.Box, radius float32, col colors.Color) error {
	p, err := path.RoundedRectPath(r, radius, col)
	if err != nil {
		return err
	}
	return c.FillPath(p)
}

func (c *Canvas) FillEllipse(center geom.Point, rx, ry float32, col colors.Color) error {
	p, err := path.EllipsePath(center, rx, ry, col)
	if err != nil {
		return err
	}
	return c.FillPath(p)
}

func (c *Canvas) StrokeEllipse(center geom.Point, rx, ry float32, col colors.Color, opts tess.StrokeOptions) error {
	p, err := path.EllipsePath(center, rx, ry, col)
	if err != nil {
		return err
	}
	return c.StrokePath(p, opts)
}

func (c *Canvas) FillPolygon(points []geom.Point, col colors.Color) error {
	p, err := path.PolygonPath(points, col)
	if err != nil {
		return err
	}
	return c.FillPath(p)
}

// Line strokes a straight segment with butt caps.
func (c *Canvas) Line(start, end geom.Point, col colors.Color, width float32) error {
	p, err := path.LinePath(start, end, col)
	if err != nil {
		return err
	}
	return c.StrokePath(p, tess.DefaultStroke().WithWidth(width))
}

// Arc strokes a circular arc from start to end, bulging towards the left of
// the start->end direction. See path.ArcPath for how radius shapes it.
func (c *Canvas) Arc(start, end geom.Point, radius float32, col colors.Color, opts tess.StrokeOptions) error {
	p, err := path.ArcPath(start, end, radius, col)
	if err != nil {
		return err
	}
	return c.StrokePath(p, opts)
}

// Render draws w into sub, given in this canvas' local coordinates and
// narrowed to this canvas' region.
func (c *Canvas) Render(w Widget, sub geom.Box) error {
	child := NewCanvas(c.r, sub.Translate(c.bounds.Min.ToVector()).Intersect(c.bounds))
	return w.Render(child)
}
