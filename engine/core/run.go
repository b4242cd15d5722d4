package core

import (
	"fmt"
	"runtime"

	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/logging"
	"github.com/hubastard/xenon/engine/render"
	"github.com/hubastard/xenon/engine/ui"
)

// Window is the platform collaborator. It delivers events synchronously
// through the callback from inside WaitEvents or PollEvents.
type Window interface {
	WaitEvents()
	PollEvents()
	ShouldClose() bool
	Size() geom.Size
	Scale() float32
	SetEventCallback(cb func(Event))
	SwapBuffers()
	Destroy()
}

type (
	WindowFactory   func(Config) (Window, error)
	RendererFactory func(Window, Config) (render.Renderer, error)
)

// Run wires the platform window + renderer and executes the main loop until
// the window asks to close. Failing to create either is fatal.
func Run(cfg Config, root ui.Widget, newWindow WindowFactory, newRenderer RendererFactory) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("core: create window: %w", err)
	}
	defer win.Destroy()

	r, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("core: create renderer: %w", err)
	}
	if s, ok := r.(interface{ Shutdown() }); ok {
		// renderer shuts down before the window that owns its context
		defer s.Shutdown()
	}

	log := logging.Logger()
	d := NewDriver(root, r, win.Size(), win.Scale())
	var handleErr error
	win.SetEventCallback(func(ev Event) {
		// first handler error wins; unsupported input ends the loop too
		if err := d.Handle(ev); err != nil && handleErr == nil {
			handleErr = err
		}
	})

	log.Info("engine start", "title", cfg.Title, "renderer", r.Name())
	for {
		if _, err := d.Tick(); err != nil {
			return err
		}
		if d.Closed() || win.ShouldClose() {
			break
		}
		win.WaitEvents()
		if handleErr != nil {
			log.Error("event handling failed", "err", handleErr)
			return handleErr
		}
	}
	log.Info("engine exit", "frames", d.Frames())
	return nil
}
