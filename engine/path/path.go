// Package path describes vector paths whose vertices carry attributes: a
// normalized color for ColorPath, a texture coordinate for TexturePath.
//
// Paths are built once with a fluent builder, handed to the tessellator and
// never mutated afterwards.
package path

import (
	"errors"
	"fmt"

	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/render"
)

// Attribute widths per path kind.
const (
	ColorAttrs   = 4
	TextureAttrs = 2
)

// ErrBuilder is matched by every path construction error.
var ErrBuilder = errors.New("path: invalid construction")

type Verb uint8

const (
	VerbBegin Verb = iota
	VerbLine
	VerbQuadratic
	VerbCubic
)

func (v Verb) String() string {
	switch v {
	case VerbBegin:
		return "begin"
	case VerbLine:
		return "line"
	case VerbQuadratic:
		return "quadratic"
	case VerbCubic:
		return "cubic"
	}
	return fmt.Sprintf("verb(%d)", uint8(v))
}

// Segment ends at To. Ctrl1 is used by quadratic and cubic segments, Ctrl2
// by cubic ones. Attrs belong to the vertex at To.
type Segment struct {
	Verb         Verb
	Ctrl1, Ctrl2 geom.Point
	To           geom.Point
	Attrs        []float32
}

// SubPath always starts with a VerbBegin segment.
type SubPath struct {
	Segments []Segment
	Closed   bool
}

// Path is the attribute-agnostic storage shared by ColorPath and TexturePath.
type Path struct {
	attrWidth int
	subPaths  []SubPath
}

func (p *Path) AttrWidth() int      { return p.attrWidth }
func (p *Path) SubPaths() []SubPath { return p.subPaths }
func (p *Path) IsEmpty() bool       { return len(p.subPaths) == 0 }

// ColorPath is a path whose vertices carry RGBA colors.
type ColorPath struct{ Path }

// TexturePath is a path whose vertices carry UV coordinates into Texture.
type TexturePath struct {
	Path
	Texture render.TextureID
}

type builder struct {
	path Path
	open bool
	err  error
}

func (b *builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: "+format, append([]any{ErrBuilder}, args...)...)
	}
}

func (b *builder) checkAttrs(attrs []float32) []float32 {
	if len(attrs) != b.path.attrWidth {
		b.fail("vertex has %d attributes, path expects %d", len(attrs), b.path.attrWidth)
	}
	return append([]float32(nil), attrs...)
}

func (b *builder) begin(p geom.Point, attrs []float32) {
	if b.open {
		b.fail("begin at %v inside an open sub-path", p)
		return
	}
	b.open = true
	b.path.subPaths = append(b.path.subPaths, SubPath{
		Segments: []Segment{{Verb: VerbBegin, To: p, Attrs: b.checkAttrs(attrs)}},
	})
}

func (b *builder) segment(s Segment) {
	if !b.open {
		b.fail("%s to %v without begin", s.Verb, s.To)
		return
	}
	s.Attrs = b.checkAttrs(s.Attrs)
	sp := &b.path.subPaths[len(b.path.subPaths)-1]
	sp.Segments = append(sp.Segments, s)
}

func (b *builder) end(close bool) {
	if !b.open {
		b.fail("end without begin")
		return
	}
	b.open = false
	b.path.subPaths[len(b.path.subPaths)-1].Closed = close
}

func (b *builder) build() (Path, error) {
	if b.open && b.err == nil {
		b.fail("sub-path %d was never ended", len(b.path.subPaths)-1)
	}
	p, err := b.path, b.err
	*b = builder{path: Path{attrWidth: p.attrWidth}}
	if err != nil {
		return Path{}, err
	}
	return p, nil
}
