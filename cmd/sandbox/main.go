package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/hubastard/xenon/engine/assets"
	"github.com/hubastard/xenon/engine/core"
	"github.com/hubastard/xenon/engine/geom"
	glbackend "github.com/hubastard/xenon/engine/gfx/gl"
	"github.com/hubastard/xenon/engine/gfx/soft"
	"github.com/hubastard/xenon/engine/logging"
	"github.com/hubastard/xenon/engine/platform"
	"github.com/hubastard/xenon/engine/profiler"
	"github.com/hubastard/xenon/engine/render"
	"github.com/hubastard/xenon/engine/ui"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file")
		headless    = flag.Bool("headless", false, "render one frame with the software backend and exit")
		out         = flag.String("out", "frame.png", "PNG written in headless mode")
		texturePath = flag.String("texture", "", "image shown in the gallery (default: a checkerboard)")
		profilePath = flag.String("profile", "", "write a speedscope profile of the run to this file")
	)
	flag.Parse()

	if *profilePath != "" {
		profiler.Init(1 << 16)
	}
	err := run(*configPath, *headless, *out, *texturePath)
	if *profilePath != "" {
		if perr := profiler.Dump(*profilePath, "xenon sandbox"); perr != nil {
			fmt.Fprintln(os.Stderr, "sandbox: profile:", perr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool, out, texturePath string) error {
	cfg := core.DefaultConfig()
	cfg.Title = "xenon sandbox"
	if configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(configPath); err != nil {
			return err
		}
	}
	logging.SetLogger(newLogger(cfg.LogLevel))

	texture := checkerboard(64, 8)
	if texturePath != "" {
		img, err := assets.LoadImage(texturePath)
		if err != nil {
			return err
		}
		texture = img
	}
	root := buildScene(texture)

	if headless {
		return snapshot(cfg, root, out)
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newRenderer := func(win core.Window, cfg core.Config) (render.Renderer, error) {
		return glbackend.New(win, glbackend.Config{
			Size:       win.Size(),
			Scale:      win.Scale(),
			ClearColor: cfg.ClearColor,
		})
	}
	return core.Run(cfg, root, newWindow, newRenderer)
}

// newLogger writes text to terminals and JSON everywhere else.
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// snapshot renders the first frame on the CPU and writes it to out.
func snapshot(cfg core.Config, root ui.Widget, out string) error {
	size := geom.Sz(float32(cfg.Width), float32(cfg.Height))
	r, err := soft.New(size, 1, soft.WithClearColor(cfg.ClearColor))
	if err != nil {
		return err
	}
	if _, err := core.NewDriver(root, r, size, 1).Tick(); err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.Frame()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	logging.Logger().Info("snapshot written", "path", out, "presents", r.Presents())
	return f.Close()
}
