// Package glbackend renders through OpenGL 3.3 core. It needs a current GL
// context on the calling thread, which the platform window provides.
package glbackend

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/xenon/engine/assets"
	"github.com/hubastard/xenon/engine/colors"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/logging"
	"github.com/hubastard/xenon/engine/profiler"
	"github.com/hubastard/xenon/engine/render"
)

const Name = "gl"

// Surface is what the renderer presents to.
type Surface interface {
	SwapBuffers()
}

// Config carries the initial surface state.
type Config struct {
	Size       geom.Size
	Scale      float32
	ClearColor colors.Color
}

// mesh is a vertex array with its own vertex and index buffers.
type mesh struct {
	vao, vbo, ebo uint32
}

type Renderer struct {
	win      Surface
	cfg      Config
	colorP   program
	textureP program
	colorM   mesh
	textureM mesh

	vp       render.Viewport
	vpDirty  bool
	batch    render.Batch
	textures render.TextureTable[uint32]
	stats    render.Statistics
}

// New compiles both pipelines. On failure every GL object created so far is
// released and the error wraps render.ErrBackendSetup.
func New(win Surface, cfg Config) (*Renderer, error) {
	r := &Renderer{win: win, cfg: cfg}
	if err := r.init(); err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("%w: gl: %v", render.ErrBackendSetup, err)
	}
	r.Resize(cfg.Size, cfg.Scale)
	logging.Logger().Info("renderer created",
		"backend", Name,
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"width", cfg.Size.Width,
		"height", cfg.Size.Height,
		"scale", cfg.Scale,
	)
	return r, nil
}

func (r *Renderer) init() error {
	var err error
	if r.colorP, err = loadProgram("color.vert", "color.frag"); err != nil {
		return err
	}
	if r.textureP, err = loadProgram("texture.vert", "texture.frag"); err != nil {
		return err
	}

	// layout(location = 0) in vec2 aPos;
	// layout(location = 1) in vec4 aColor;
	r.colorM = newMesh(render.ColorVertexStride, 4)
	// layout(location = 0) in vec2 aPos;
	// layout(location = 1) in vec2 aUV;
	r.textureM = newMesh(render.TextureVertexStride, 2)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("setup left GL error 0x%x", code)
	}
	return nil
}

func newMesh(stride int32, attrSize int32) mesh {
	var m mesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, attrSize, gl.FLOAT, false, stride, gl.PtrOffset(2*4))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (m *mesh) delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = mesh{}
}

// Shutdown releases every GL object owned by the renderer.
func (r *Renderer) Shutdown() {
	r.colorM.delete()
	r.textureM.delete()
	for _, p := range []*program{&r.colorP, &r.textureP} {
		if p.id != 0 {
			gl.DeleteProgram(p.id)
			p.id = 0
		}
	}
	if ids := r.textures.All(); len(ids) > 0 {
		gl.DeleteTextures(int32(len(ids)), &ids[0])
	}
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) Resize(size geom.Size, scale float32) {
	if r.vp.Update(size, scale) {
		r.vpDirty = true
	}
}

func (r *Renderer) AddColoredObject(buf render.Buffers[render.ColorVertex]) {
	r.batch.AddColored(buf)
}

func (r *Renderer) AddTexturedObject(tex render.TextureID, buf render.Buffers[render.TextureVertex]) {
	r.batch.AddTextured(tex, buf)
}

// RegisterTexture uploads img as an RGBA8 texture sampled linearly.
func (r *Renderer) RegisterTexture(img image.Image) (render.TextureID, error) {
	w, h, pix := assets.Pixels(img)
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("gl: register texture: empty image")
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("gl: register texture: GL error 0x%x", code)
	}
	return r.textures.Add(tex), nil
}

// Render draws the accumulated items in submission order and swaps buffers.
func (r *Renderer) Render() error {
	if r.batch.Empty() {
		return nil
	}
	defer r.batch.Reset()
	defer profiler.Start("gl.Render")()

	w, h := r.vp.Physical()
	if r.vpDirty {
		gl.Viewport(0, 0, int32(w), int32(h))
		r.vpDirty = false
	}
	if w == 0 || h == 0 {
		logging.Logger().Warn("skipping present to empty surface", "backend", Name)
		return nil
	}
	c := r.cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	for _, it := range r.batch.Items() {
		switch it.Kind {
		case render.ItemColored:
			r.use(r.colorP)
			draw(r.colorM, it.Colored.Vertices, render.ColorVertexStride, it.Colored.Indices)
		case render.ItemTextured:
			tex, ok := r.textures.Get(it.Texture)
			if !ok {
				return fmt.Errorf("%w: gl: texture %d was never registered", render.ErrContractViolation, it.Texture)
			}
			r.use(r.textureP)
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.Uniform1i(r.textureP.uTex, 0)
			draw(r.textureM, it.Textured.Vertices, render.TextureVertexStride, it.Textured.Indices)
		}
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl: render: GL error 0x%x", code)
	}
	r.win.SwapBuffers()

	s := r.batch.Stats()
	r.stats.Presents++
	r.stats.DrawCalls, r.stats.Vertices, r.stats.Indices = s.DrawCalls, s.Vertices, s.Indices
	r.stats.Textures = r.textures.Len()
	logging.Logger().Debug("present", "backend", Name, "draw_calls", s.DrawCalls, "vertices", s.Vertices, "indices", s.Indices)
	return nil
}

// Stats returns the counters of the last present and the total present count.
func (r *Renderer) Stats() render.Statistics { return r.stats }

func (r *Renderer) use(p program) {
	gl.UseProgram(p.id)
	gl.Uniform2f(p.uSize, r.vp.Size.Width, r.vp.Size.Height)
	gl.Uniform1f(p.uScale, r.vp.Scale)
}

func draw[V any](m mesh, verts []V, stride int, indices []uint16) {
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*stride, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STREAM_DRAW)
	gl.DrawElements(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}
