package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
	"github.com/hubastard/xenon/engine/path"
	"github.com/hubastard/xenon/engine/render"
	"github.com/hubastard/xenon/engine/tess"
	"github.com/hubastard/xenon/engine/ui"
)

// ------- A gallery of canvas primitives -------
type gallery struct {
	ui.Base
	img     image.Image
	tex     render.TextureID
	hasTex  bool
	rounded bool
}

func newGallery(img image.Image) *gallery { return &gallery{img: img} }

func (g *gallery) Size(max geom.Size) geom.Size { return geom.Sz(360, 120).Min(max) }

// Update toggles the stroke joins with R.
func (g *gallery) Update(in *input.Input) bool {
	if in.IsPressed(input.KeyR) {
		g.rounded = !g.rounded
		return true
	}
	return false
}

func (g *gallery) Render(c *ui.Canvas) error {
	if !g.hasTex {
		id, err := c.Renderer().RegisterTexture(g.img)
		if err != nil {
			return fmt.Errorf("gallery texture: %w", err)
		}
		g.tex, g.hasTex = id, true
	}

	stroke := tess.DefaultStroke().WithWidth(6)
	if g.rounded {
		stroke = stroke.WithJoin(tess.JoinRound).WithCap(tess.CapRound)
	}

	if err := c.FillEllipse(geom.Pt(50, 60), 40, 40, colors.Cyan); err != nil {
		return err
	}
	if err := c.StrokeEllipse(geom.Pt(50, 60), 46, 46, colors.White, tess.DefaultStroke().WithWidth(2)); err != nil {
		return err
	}
	if err := c.FillPolygon(star(geom.Pt(150, 60), 45, 20, 5), colors.Yellow); err != nil {
		return err
	}
	// right to left, so it bows up towards the star
	if err := c.Arc(geom.Pt(190, 110), geom.Pt(110, 110), 60, colors.Red, stroke.WithWidth(3)); err != nil {
		return err
	}

	zigzag, err := path.NewColorPath().
		SetColor(colors.Magenta).Begin(geom.Pt(210, 100)).
		LineTo(geom.Pt(230, 20)).
		SetColor(colors.Cyan).LineTo(geom.Pt(250, 100)).
		LineTo(geom.Pt(270, 20)).
		End(false).
		Build()
	if err != nil {
		return err
	}
	if err := c.StrokePath(zigzag, stroke); err != nil {
		return err
	}

	quad, err := path.NewTexturePath(g.tex).
		Begin(geom.Pt(290, 20), geom.Pt(0, 0)).
		LineTo(geom.Pt(350, 20), geom.Pt(1, 0)).
		LineTo(geom.Pt(350, 100), geom.Pt(1, 1)).
		LineTo(geom.Pt(290, 100), geom.Pt(0, 1)).
		End(true).
		Build()
	if err != nil {
		return err
	}
	if err := c.FillTexturePath(quad); err != nil {
		return err
	}
	return c.Line(geom.Pt(0, 118), geom.Pt(360, 118), colors.Gray, 2)
}

func star(center geom.Point, outer, inner float32, points int) []geom.Point {
	out := make([]geom.Point, 0, points*2)
	for i := range points * 2 {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/float64(points) - math.Pi/2
		out = append(out, geom.Pt(center.X+r*float32(math.Cos(a)), center.Y+r*float32(math.Sin(a))))
	}
	return out
}

func checkerboard(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			c := color.RGBA{40, 40, 48, 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{230, 120, 40, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// buildScene returns the sandbox's root widget.
func buildScene(texture image.Image) ui.Widget {
	clicks := 0
	status := &ui.Rectangle{Color: colors.Red, MaxSize: geom.Sz(24, 24)}
	button := ui.NewButton(geom.Sz(120, 36), func() {
		clicks++
		if clicks%2 == 1 {
			status.Color = colors.Green
		} else {
			status.Color = colors.Red
		}
	})

	toolbar := ui.NewView(button, status).
		AlignCross(ui.AlignCenter).
		Gap(12)

	return ui.NewView().
		FlowDirection(ui.LayoutVertical).
		WidthExpand().
		HeightExpand().
		Padding(16).
		Gap(16).
		BgColor(colors.DarkGray).
		Add(toolbar).
		Add(newGallery(texture)).
		AddExpanded(ui.NewRandomRectangle(geom.Sz(400, 200), nil))
}
