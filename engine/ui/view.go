package ui

import (
	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
)

type SizeMode int

const (
	SizeFit SizeMode = iota
	SizeFixed
	SizeExpand
)

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

// View is a flex container: it lines its children up along one axis with a
// gap between them, optionally growing some to fill the spare room.
type View struct {
	children []Widget
	expand   []bool
	boxes    []geom.Box
	size     geom.Size

	widthMode, heightMode SizeMode
	widthVal, heightVal   float32
	padding               [4]float32 // left, top, right, bottom
	gap                   float32
	mainAlign, crossAlign Align
	flow                  LayoutDirection
	color                 colors.Color
}

func NewView(children ...Widget) *View {
	v := &View{gap: 10}
	for _, c := range children {
		v.Add(c)
	}
	return v
}

func (v *View) Add(w Widget) *View {
	v.children = append(v.children, w)
	v.expand = append(v.expand, false)
	return v
}

// AddExpanded adds w so that it takes a share of the spare main-axis space.
func (v *View) AddExpanded(w Widget) *View {
	v.Add(w)
	v.expand[len(v.expand)-1] = true
	return v
}

func (v *View) BgColor(c colors.Color) *View                  { v.color = c; return v }
func (v *View) FlowDirection(direction LayoutDirection) *View { v.flow = direction; return v }
func (v *View) Gap(g float32) *View                           { v.gap = g; return v }
func (v *View) AlignMain(a Align) *View                       { v.mainAlign = a; return v }
func (v *View) AlignCross(a Align) *View                      { v.crossAlign = a; return v }
func (v *View) Padding(all float32) *View                     { return v.Padding4(all, all, all, all) }
func (v *View) Padding2(horizontal, vertical float32) *View {
	return v.Padding4(horizontal, vertical, horizontal, vertical)
}

func (v *View) Padding4(left, top, right, bottom float32) *View {
	v.padding = [4]float32{left, top, right, bottom}
	return v
}

func (v *View) WidthFit() *View { v.widthMode = SizeFit; return v }

func (v *View) WidthFixed(width float32) *View {
	v.widthMode, v.widthVal = SizeFixed, width
	return v
}

func (v *View) WidthExpand() *View { v.widthMode = SizeExpand; return v }

func (v *View) HeightFit() *View { v.heightMode = SizeFit; return v }

func (v *View) HeightFixed(height float32) *View {
	v.heightMode, v.heightVal = SizeFixed, height
	return v
}

func (v *View) HeightExpand() *View { v.heightMode = SizeExpand; return v }

// ChildBounds returns where child i was placed by the last layout, in the
// view's local coordinates.
func (v *View) ChildBounds(i int) geom.Box { return v.boxes[i] }

func (v *View) Size(limit geom.Size) geom.Size  { return v.layout(limit) }
func (v *View) Resize(size geom.Size) geom.Size { return v.layout(size) }

// Update runs every child's Update, even after one reports dirty.
func (v *View) Update(in *input.Input) bool {
	dirty := false
	for _, c := range v.children {
		if c.Update(in) {
			dirty = true
		}
	}
	return dirty
}

func (v *View) Focus() bool {
	for _, c := range v.children {
		if c.Focus() {
			return true
		}
	}
	return false
}

func (v *View) Render(c *Canvas) error {
	if len(v.boxes) != len(v.children) {
		v.layout(c.Size())
	}
	if v.color[3] > 0 && !v.size.IsEmpty() {
		if err := c.FillRect(geom.BoxFromSize(geom.Point{}, v.size), v.color); err != nil {
			return err
		}
	}
	for i, child := range v.children {
		if v.boxes[i].IsEmpty() {
			continue
		}
		if err := c.Render(child, v.boxes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v *View) main(s geom.Size) float32 {
	if v.flow == LayoutVertical {
		return s.Height
	}
	return s.Width
}

func (v *View) cross(s geom.Size) float32 {
	if v.flow == LayoutVertical {
		return s.Width
	}
	return s.Height
}

// orient maps main/cross axis values back to x/y.
func (v *View) orient(main, cross float32) (x, y float32) {
	if v.flow == LayoutVertical {
		return cross, main
	}
	return main, cross
}

func resolveAxis(mode SizeMode, fixed, content, limit float32) float32 {
	switch mode {
	case SizeFixed:
		if fixed > 0 {
			return min(fixed, limit)
		}
		return min(content, limit)
	case SizeExpand:
		return limit
	default:
		return min(content, limit)
	}
}

func (v *View) layout(limit geom.Size) geom.Size {
	pl, pt, pr, pb := v.padding[0], v.padding[1], v.padding[2], v.padding[3]
	innerMax := geom.Sz(max(0, limit.Width-pl-pr), max(0, limit.Height-pt-pb))

	sizes := make([]geom.Size, len(v.children))
	var fixedMain, expandMain, maxCross float32
	var expandCount int
	for i, child := range v.children {
		s := child.Size(innerMax)
		sizes[i] = s
		if v.expand[i] {
			expandMain += v.main(s)
			expandCount++
		} else {
			fixedMain += v.main(s)
		}
		maxCross = max(maxCross, v.cross(s))
	}

	var gapTotal float32
	if len(v.children) > 1 {
		gapTotal = v.gap * float32(len(v.children)-1)
	}
	contentW, contentH := v.orient(fixedMain+expandMain+gapTotal, maxCross)
	w := resolveAxis(v.widthMode, v.widthVal, contentW+pl+pr, limit.Width)
	h := resolveAxis(v.heightMode, v.heightVal, contentH+pt+pb, limit.Height)
	v.size = geom.Sz(w, h)
	inner := geom.Sz(max(0, w-pl-pr), max(0, h-pt-pb))
	innerMain, innerCross := v.main(inner), v.cross(inner)

	// Distribute extra space along main axis to expanding children.
	if expandCount > 0 {
		extra := max(0, innerMain-(fixedMain+expandMain+gapTotal))
		share := extra / float32(expandCount)
		for i := range sizes {
			if v.expand[i] {
				mw, mh := v.orient(share, 0)
				sizes[i] = geom.Sz(sizes[i].Width+mw, sizes[i].Height+mh)
			}
		}
	}

	mainUsed := gapTotal
	for _, s := range sizes {
		mainUsed += v.main(s)
	}
	var cursor float32
	switch remaining := max(0, innerMain-mainUsed); v.mainAlign {
	case AlignCenter:
		cursor = remaining / 2
	case AlignEnd:
		cursor = remaining
	}

	v.boxes = v.boxes[:0]
	for i, child := range v.children {
		m, c := v.main(sizes[i]), v.cross(sizes[i])
		if v.crossAlign == AlignStretch {
			c = innerCross
		}
		c = min(c, innerCross)

		var offset float32
		switch v.crossAlign {
		case AlignCenter:
			offset = (innerCross - c) / 2
		case AlignEnd:
			offset = innerCross - c
		}
		x, y := v.orient(cursor, offset)
		cw, ch := v.orient(m, c)
		accepted := child.Resize(geom.Sz(cw, ch)).Min(geom.Sz(cw, ch))
		v.boxes = append(v.boxes, geom.BoxFromSize(geom.Pt(pl+x, pt+y), accepted))
		cursor += m + v.gap
	}
	return v.size
}
