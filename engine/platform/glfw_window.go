// Package platform implements core.Window on GLFW with an OpenGL 3.3 core
// context.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/xenon/engine/core"
	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/input"
	"github.com/hubastard/xenon/engine/logging"
)

// GLFWWindow implements core.Window and pushes events to the driver via a
// callback.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
}

// NewGLFWWindow must be called on the main thread before any GL calls.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, hint(cfg.Resizable))
	glfw.WindowHint(glfw.Decorated, hint(cfg.Decorated))
	glfw.WindowHint(glfw.Visible, hint(cfg.Visible))
	glfw.WindowHint(glfw.Maximized, hint(cfg.Maximized))
	glfw.WindowHint(glfw.TransparentFramebuffer, hint(cfg.Transparent))
	glfw.WindowHint(glfw.Floating, hint(cfg.AlwaysOnTop))
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	width, height := cfg.Width, cfg.Height
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			glfw.Terminate()
			return nil, fmt.Errorf("platform: fullscreen: no primary monitor")
		}
		mode := monitor.GetVideoMode()
		if mode == nil {
			glfw.Terminate()
			return nil, fmt.Errorf("platform: fullscreen: no video mode for %s", monitor.GetName())
		}
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width, height = mode.Width, mode.Height
	}

	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}
	win.SetSizeLimits(limit(cfg.MinWidth), limit(cfg.MinHeight), limit(cfg.MaxWidth), limit(cfg.MaxHeight))
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("platform: gl init: %w", err)
	}
	logging.Logger().Info("window opened", "title", cfg.Title, "size", fmt.Sprintf("%dx%d", width, height),
		"fullscreen", cfg.Fullscreen, "gl", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &GLFWWindow{w: win}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetSizeCallback(func(*glfw.Window, int, int) { gw.resized() })
	win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { gw.resized() })
	win.SetContentScaleCallback(func(*glfw.Window, float32, float32) { gw.resized() })
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(core.EventMouseMove{X: float32(x), Y: float32(y)})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		gw.emit(core.EventMouseButton{Button: translateButton(b), Down: action == glfw.Press})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == input.KeyUnknown || action == glfw.Repeat {
			return
		}
		gw.emit(core.EventKey{Key: k, Down: action == glfw.Press, Mods: translateMods(mods)})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

func (g *GLFWWindow) resized() {
	g.emit(core.EventResize{Size: g.Size(), Scale: g.Scale()})
}

// core.Window impl
func (g *GLFWWindow) WaitEvents()                          { glfw.WaitEvents() }
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// Size is in screen coordinates, the space cursor positions arrive in.
func (g *GLFWWindow) Size() geom.Size {
	w, h := g.w.GetSize()
	return geom.Sz(float32(w), float32(h))
}

// Scale is the ratio of framebuffer pixels to screen coordinates.
func (g *GLFWWindow) Scale() float32 {
	w, _ := g.w.GetSize()
	fw, _ := g.w.GetFramebufferSize()
	if w <= 0 || fw <= 0 {
		return 1
	}
	return float32(fw) / float32(w)
}

func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

func hint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func limit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

func translateKey(k glfw.Key) input.Key {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return input.KeyA + input.Key(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return input.Key0 + input.Key(k-glfw.Key0)
	}
	switch k {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyEnter:
		return input.KeyEnter
	case glfw.KeyTab:
		return input.KeyTab
	case glfw.KeyBackspace:
		return input.KeyBackspace
	case glfw.KeyLeft:
		return input.KeyArrowLeft
	case glfw.KeyRight:
		return input.KeyArrowRight
	case glfw.KeyUp:
		return input.KeyArrowUp
	case glfw.KeyDown:
		return input.KeyArrowDown
	default:
		return input.KeyUnknown
	}
}

// translateButton reports buttons past the canonical three as
// input.OtherButton so the driver can reject them.
func translateButton(b glfw.MouseButton) input.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return input.MouseLeft
	case glfw.MouseButtonMiddle:
		return input.MouseMiddle
	case glfw.MouseButtonRight:
		return input.MouseRight
	default:
		return input.OtherButton(int(b) - int(glfw.MouseButton4))
	}
}

func translateMods(m glfw.ModifierKey) input.Mod {
	var out input.Mod
	if m&glfw.ModShift != 0 {
		out |= input.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= input.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= input.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= input.ModSuper
	}
	return out
}
