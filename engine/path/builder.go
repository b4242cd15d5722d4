package path

import (
	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/render"
)

// ColorPathBuilder provides a fluent interface for ColorPath construction.
// Every vertex takes the builder's current color, black by default.
type ColorPathBuilder struct {
	b     builder
	color colors.Color
}

// NewColorPath starts a new color path builder.
func NewColorPath() *ColorPathBuilder {
	return &ColorPathBuilder{b: builder{path: Path{attrWidth: ColorAttrs}}, color: colors.Black}
}

// SetColor changes the color attached to subsequent vertices.
func (c *ColorPathBuilder) SetColor(col colors.Color) *ColorPathBuilder {
	c.color = col
	return c
}

func (c *ColorPathBuilder) attrs() []float32 { return c.color[:] }

func (c *ColorPathBuilder) Begin(p geom.Point) *ColorPathBuilder {
	c.b.begin(p, c.attrs())
	return c
}

func (c *ColorPathBuilder) LineTo(p geom.Point) *ColorPathBuilder {
	c.b.segment(Segment{Verb: VerbLine, To: p, Attrs: c.attrs()})
	return c
}

func (c *ColorPathBuilder) QuadraticBezierTo(ctrl, p geom.Point) *ColorPathBuilder {
	c.b.segment(Segment{Verb: VerbQuadratic, Ctrl1: ctrl, To: p, Attrs: c.attrs()})
	return c
}

func (c *ColorPathBuilder) CubicBezierTo(ctrl1, ctrl2, p geom.Point) *ColorPathBuilder {
	c.b.segment(Segment{Verb: VerbCubic, Ctrl1: ctrl1, Ctrl2: ctrl2, To: p, Attrs: c.attrs()})
	return c
}

// End finishes the current sub-path, closing it back to its start if close is set.
func (c *ColorPathBuilder) End(close bool) *ColorPathBuilder {
	c.b.end(close)
	return c
}

// Build returns the finished path or the first construction error. The
// builder is reset afterwards.
func (c *ColorPathBuilder) Build() (*ColorPath, error) {
	p, err := c.b.build()
	if err != nil {
		return nil, err
	}
	return &ColorPath{p}, nil
}

// TexturePathBuilder provides a fluent interface for TexturePath
// construction. Each vertex names its own UV coordinate.
type TexturePathBuilder struct {
	b   builder
	tex render.TextureID
}

func NewTexturePath(tex render.TextureID) *TexturePathBuilder {
	return &TexturePathBuilder{b: builder{path: Path{attrWidth: TextureAttrs}}, tex: tex}
}

func (t *TexturePathBuilder) Begin(p, uv geom.Point) *TexturePathBuilder {
	t.b.begin(p, []float32{uv.X, uv.Y})
	return t
}

func (t *TexturePathBuilder) LineTo(p, uv geom.Point) *TexturePathBuilder {
	t.b.segment(Segment{Verb: VerbLine, To: p, Attrs: []float32{uv.X, uv.Y}})
	return t
}

func (t *TexturePathBuilder) QuadraticBezierTo(ctrl, p, uv geom.Point) *TexturePathBuilder {
	t.b.segment(Segment{Verb: VerbQuadratic, Ctrl1: ctrl, To: p, Attrs: []float32{uv.X, uv.Y}})
	return t
}

func (t *TexturePathBuilder) CubicBezierTo(ctrl1, ctrl2, p, uv geom.Point) *TexturePathBuilder {
	t.b.segment(Segment{Verb: VerbCubic, Ctrl1: ctrl1, Ctrl2: ctrl2, To: p, Attrs: []float32{uv.X, uv.Y}})
	return t
}

func (t *TexturePathBuilder) End(close bool) *TexturePathBuilder {
	t.b.end(close)
	return t
}

func (t *TexturePathBuilder) Build() (*TexturePath, error) {
	p, err := t.b.build()
	if err != nil {
		return nil, err
	}
	return &TexturePath{Path: p, Texture: t.tex}, nil
}
