// Package soft is a CPU renderer. It rasterizes the accumulated triangles
// into an *image.RGBA, which makes it usable without a display: in tests and
// for headless snapshots.
package soft

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/hubastard/xenon/engine/assets"
	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/logging"
	"github.com/hubastard/xenon/engine/profiler"
	"github.com/hubastard/xenon/engine/render"
)

const Name = "soft"

type Option func(*Renderer)

// WithClearColor sets the background each frame starts from.
func WithClearColor(c colors.Color) Option {
	return func(r *Renderer) { r.clear = c }
}

// Renderer implements render.Renderer on the CPU.
//
// Colored triangles are flat shaded with the average of their vertex colors.
// Textured triangles sample their texture bilinearly through the affine map
// from texel to pixel space.
type Renderer struct {
	vp       render.Viewport
	batch    render.Batch
	textures render.TextureTable[*image.RGBA]
	clear    colors.Color
	ras      vector.Rasterizer
	frame    *image.RGBA
	stats    render.Statistics
}

// New returns a renderer for a surface of the given logical size and scale
// factor.
func New(size geom.Size, scale float32, opts ...Option) (*Renderer, error) {
	if !(scale > 0) || size.Width < 0 || size.Height < 0 {
		return nil, fmt.Errorf("%w: soft: invalid surface %vx%v at scale %v", render.ErrBackendSetup, size.Width, size.Height, scale)
	}
	r := &Renderer{clear: colors.Transparent}
	for _, o := range opts {
		o(r)
	}
	r.vp.Update(size, scale)
	logging.Logger().Info("renderer created", "backend", Name, "width", size.Width, "height", size.Height, "scale", scale)
	return r, nil
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) Resize(size geom.Size, scale float32) {
	if !r.vp.Update(size, scale) {
		return
	}
	if size.IsEmpty() {
		logging.Logger().Warn("resize to empty surface", "backend", Name, "width", size.Width, "height", size.Height)
	}
}

func (r *Renderer) AddColoredObject(buf render.Buffers[render.ColorVertex]) {
	r.batch.AddColored(buf)
}

func (r *Renderer) AddTexturedObject(tex render.TextureID, buf render.Buffers[render.TextureVertex]) {
	r.batch.AddTextured(tex, buf)
}

func (r *Renderer) RegisterTexture(img image.Image) (render.TextureID, error) {
	if img.Bounds().Empty() {
		return 0, fmt.Errorf("soft: register texture: empty image")
	}
	return r.textures.Add(assets.ToRGBA(img)), nil
}

// Render draws all accumulated geometry onto a fresh frame. With nothing
// accumulated it keeps the previous frame and does not count a present.
func (r *Renderer) Render() error {
	if r.batch.Empty() {
		return nil
	}
	defer r.batch.Reset()
	defer profiler.Start("soft.Render")()

	stats := r.batch.Stats()
	w, h := r.vp.Physical()
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	cr, cg, cb, ca := r.clear.RGBA8()
	draw.Draw(frame, frame.Bounds(), image.NewUniform(color.NRGBA{cr, cg, cb, ca}), image.Point{}, draw.Src)

	for _, it := range r.batch.Items() {
		switch it.Kind {
		case render.ItemColored:
			r.drawColored(frame, it.Colored)
		case render.ItemTextured:
			tex, ok := r.textures.Get(it.Texture)
			if !ok {
				return fmt.Errorf("%w: soft: texture %d was never registered", render.ErrContractViolation, it.Texture)
			}
			r.drawTextured(frame, tex, it.Textured)
		}
	}

	r.frame = frame
	r.stats.Presents++
	r.stats.DrawCalls = stats.DrawCalls
	r.stats.Vertices = stats.Vertices
	r.stats.Indices = stats.Indices
	r.stats.Textures = r.textures.Len()
	logging.Logger().Debug("present", "backend", Name, "draw_calls", stats.DrawCalls, "vertices", stats.Vertices, "indices", stats.Indices)
	return nil
}

// Frame returns the last presented image, or nil before the first present.
func (r *Renderer) Frame() *image.RGBA { return r.frame }

// Stats returns the counters of the last present and the total present count.
func (r *Renderer) Stats() render.Statistics { return r.stats }

func (r *Renderer) Presents() int { return r.stats.Presents }

func (r *Renderer) drawColored(dst *image.RGBA, buf render.Buffers[render.ColorVertex]) {
	s := r.vp.Scale
	for i := 0; i+2 < len(buf.Indices); i += 3 {
		a, b, c := buf.Vertices[buf.Indices[i]], buf.Vertices[buf.Indices[i+1]], buf.Vertices[buf.Indices[i+2]]
		pts := [3][2]float32{scaled(a.Position, s), scaled(b.Position, s), scaled(c.Position, s)}
		var avg colors.Color
		for k := range avg {
			avg[k] = (a.Color[k] + b.Color[k] + c.Color[k]) / 3
		}
		cr, cg, cb, ca := avg.RGBA8()
		if ca == 0 {
			continue
		}
		rect, ok := r.triangle(dst.Bounds(), pts)
		if !ok {
			continue
		}
		r.ras.DrawOp = draw.Over
		r.ras.Draw(dst, rect, image.NewUniform(color.NRGBA{cr, cg, cb, ca}), image.Point{})
	}
}

func (r *Renderer) drawTextured(dst *image.RGBA, tex *image.RGBA, buf render.Buffers[render.TextureVertex]) {
	s := r.vp.Scale
	tw, th := float64(tex.Rect.Dx()), float64(tex.Rect.Dy())
	for i := 0; i+2 < len(buf.Indices); i += 3 {
		vs := [3]render.TextureVertex{buf.Vertices[buf.Indices[i]], buf.Vertices[buf.Indices[i+1]], buf.Vertices[buf.Indices[i+2]]}
		var pts [3][2]float32
		var texels [3][2]float64
		for k, v := range vs {
			pts[k] = scaled(v.Position, s)
			texels[k] = [2]float64{float64(v.UV[0]) * tw, float64(v.UV[1]) * th}
		}
		m, ok := texelToPixel(texels, pts)
		if !ok {
			continue
		}
		rect, ok := r.triangle(dst.Bounds(), pts)
		if !ok {
			continue
		}
		mask := image.NewAlpha(rect)
		r.ras.DrawOp = draw.Src
		r.ras.Draw(mask, rect, image.Opaque, image.Point{})

		sub := dst.SubImage(rect).(*image.RGBA)
		draw.ApproxBiLinear.Transform(sub, m, tex, tex.Rect, draw.Over, &draw.Options{DstMask: mask})
	}
}

// triangle loads the rasterizer with pts relative to their clipped pixel
// bounding box and returns that box.
func (r *Renderer) triangle(clip image.Rectangle, pts [3][2]float32) (image.Rectangle, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, float64(p[0])), math.Max(maxX, float64(p[0]))
		minY, maxY = math.Min(minY, float64(p[1])), math.Max(maxY, float64(p[1]))
	}
	rect := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY))).Intersect(clip)
	if rect.Empty() {
		return rect, false
	}
	ox, oy := float32(rect.Min.X), float32(rect.Min.Y)
	r.ras.Reset(rect.Dx(), rect.Dy())
	r.ras.MoveTo(pts[0][0]-ox, pts[0][1]-oy)
	r.ras.LineTo(pts[1][0]-ox, pts[1][1]-oy)
	r.ras.LineTo(pts[2][0]-ox, pts[2][1]-oy)
	r.ras.ClosePath()
	return rect, true
}

// texelToPixel solves for the affine map taking each texel coordinate to its
// pixel position. It fails when the texture coordinates are collinear.
func texelToPixel(t [3][2]float64, p [3][2]float32) (f64.Aff3, bool) {
	e1x, e1y := t[1][0]-t[0][0], t[1][1]-t[0][1]
	e2x, e2y := t[2][0]-t[0][0], t[2][1]-t[0][1]
	det := e1x*e2y - e2x*e1y
	if math.Abs(det) < 1e-12 {
		return f64.Aff3{}, false
	}
	f1x, f1y := float64(p[1][0]-p[0][0]), float64(p[1][1]-p[0][1])
	f2x, f2y := float64(p[2][0]-p[0][0]), float64(p[2][1]-p[0][1])

	a := (f1x*e2y - f2x*e1y) / det
	b := (f2x*e1x - f1x*e2x) / det
	c := (f1y*e2y - f2y*e1y) / det
	d := (f2y*e1x - f1y*e2x) / det
	tx := float64(p[0][0]) - a*t[0][0] - b*t[0][1]
	ty := float64(p[0][1]) - c*t[0][0] - d*t[0][1]
	return f64.Aff3{a, b, tx, c, d, ty}, true
}

func scaled(p [2]float32, s float32) [2]float32 { return [2]float32{p[0] * s, p[1] * s} }
