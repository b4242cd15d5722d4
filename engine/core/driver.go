package core

import (
	"fmt"

	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
	"github.com/hubastard/xenon/engine/logging"
	"github.com/hubastard/xenon/engine/profiler"
	"github.com/hubastard/xenon/engine/render"
	"github.com/hubastard/xenon/engine/ui"
)

// Driver runs one update, layout and render cycle per tick for a root
// widget. It owns the Input and borrows the renderer for each frame.
type Driver struct {
	root     ui.Widget
	renderer render.Renderer
	state    render.RenderState
	input    *input.Input

	size  geom.Size
	scale float32

	// forced makes the next tick render whether or not the root is dirty.
	forced bool
	closed bool
	frames int
}

func NewDriver(root ui.Widget, r render.Renderer, size geom.Size, scale float32) *Driver {
	d := &Driver{
		root:     root,
		renderer: r,
		input:    input.New(geom.BoxFromSize(geom.Point{}, size)),
		size:     size,
		scale:    scale,
		forced:   true,
	}
	render.Bind(r, &d.state)
	r.Resize(size, scale)
	root.Resize(size)
	return d
}

func (d *Driver) Input() *input.Input { return d.input }

// Closed reports whether a close was requested.
func (d *Driver) Closed() bool { return d.closed }

// Frames returns how many frames were rendered.
func (d *Driver) Frames() int { return d.frames }

// Handle feeds one window event into the driver. Input events are only
// buffered; they take effect on the next Tick.
func (d *Driver) Handle(ev Event) error {
	switch e := ev.(type) {
	case EventCloseRequested:
		d.closed = true
	case EventResize:
		d.resize(e.Size, e.Scale)
	case EventKey:
		if e.Down {
			d.input.ProcessPressed(e.Key)
		} else {
			d.input.ProcessReleased(e.Key)
		}
	case EventMouseMove:
		d.input.ProcessMouseMove(geom.Pt(e.X, e.Y))
	case EventMouseButton:
		var err error
		if e.Down {
			err = d.input.ProcessMouseClick(e.Button)
		} else {
			err = d.input.ProcessMouseRelease(e.Button)
		}
		if err != nil {
			return fmt.Errorf("core: handle mouse button: %w", err)
		}
	case EventTick:
		_, err := d.Tick()
		return err
	}
	return nil
}

func (d *Driver) resize(size geom.Size, scale float32) {
	if size == d.size && scale == d.scale {
		return
	}
	d.size, d.scale = size, scale
	d.renderer.Resize(size, scale)
	d.input.SetBounds(geom.BoxFromSize(geom.Point{}, size))
	d.root.Resize(size)
	d.forced = true
}

// Tick promotes the buffered input, updates the root and, if anything is
// dirty, lays it out and renders one frame. It reports whether a frame was
// rendered. A failing render leaves nothing presented.
func (d *Driver) Tick() (bool, error) {
	defer profiler.Start("Driver.Tick")()
	d.input.Update()
	endUpdate := profiler.Start("Widget.Update")
	dirty := d.root.Update(d.input)
	endUpdate()
	if !dirty && !d.forced {
		return false, nil
	}
	if d.size.IsEmpty() {
		return false, nil
	}

	endLayout := profiler.Start("Widget.Size")
	d.root.Size(d.size)
	endLayout()

	endRender := profiler.Start("Widget.Render")
	f := &frame{Renderer: d.renderer}
	err := d.root.Render(ui.NewCanvas(f, geom.BoxFromSize(geom.Point{}, d.size)))
	endRender()
	if err != nil {
		return false, fmt.Errorf("core: render root: %w", err)
	}
	f.commit()

	endPresent := profiler.Start("Renderer.Render")
	err = render.Present(d.renderer, &d.state)
	endPresent()
	if err != nil {
		return false, fmt.Errorf("core: present: %w", err)
	}
	d.forced = false
	d.frames++
	logging.Logger().Debug("frame", "n", d.frames, "width", d.size.Width, "height", d.size.Height)
	return true, nil
}

// frame holds a tick's geometry back from the renderer until the whole tree
// has rendered.
type frame struct {
	render.Renderer
	ops []func()
}

func (f *frame) AddColoredObject(buf render.Buffers[render.ColorVertex]) {
	f.ops = append(f.ops, func() { f.Renderer.AddColoredObject(buf) })
}

func (f *frame) AddTexturedObject(tex render.TextureID, buf render.Buffers[render.TextureVertex]) {
	f.ops = append(f.ops, func() { f.Renderer.AddTexturedObject(tex, buf) })
}

func (f *frame) commit() {
	for _, op := range f.ops {
		op()
	}
}
