package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Brooklyn-Dev/ray-tracing/engine"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer"
	"github.com/Brooklyn-Dev/ray-tracing/engine/window"
)

type options struct {
	scenePath string
	width     int
	height    int
	headless  bool
	frames    int
	out       string
	vsync     bool
	software  bool
	kernel    string
	profile   bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.StringVar(&o.scenePath, "scene", "scenes/cornell.json", "scene file to load")
	fs.IntVar(&o.width, "width", 1280, "viewport width in pixels")
	fs.IntVar(&o.height, "height", 720, "viewport height in pixels")
	fs.BoolVar(&o.headless, "headless", false, "render offscreen and export instead of opening a window")
	fs.IntVar(&o.frames, "frames", 64, "passes to accumulate in headless mode")
	fs.StringVar(&o.out, "out", engine.DefaultExportPath, "PNG written by P and by headless runs")
	fs.BoolVar(&o.vsync, "vsync", true, "wait for vertical sync when presenting")
	fs.BoolVar(&o.software, "software", false, "force the fallback (software) adapter")
	fs.StringVar(&o.kernel, "kernel", "", "WGSL file replacing the built-in path tracing kernel")
	fs.BoolVar(&o.profile, "profile", false, "log frame statistics every second")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.width <= 0 || o.height <= 0 {
		return o, fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}
	if o.headless && o.frames < 1 {
		return o, fmt.Errorf("frames must be at least 1, got %d", o.frames)
	}
	return o, nil
}

func (o options) rendererOptions() ([]renderer.RendererBuilderOption, error) {
	mode := renderer.PresentModeVSync
	if !o.vsync {
		mode = renderer.PresentModeUncapped
	}
	opts := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithForceSoftwareRenderer(o.software),
	}
	if o.kernel != "" {
		src, err := os.ReadFile(o.kernel)
		if err != nil {
			return nil, fmt.Errorf("failed to read kernel %s: %w", o.kernel, err)
		}
		opts = append(opts, renderer.WithKernelSource(string(src)))
	}
	if o.headless {
		opts = append(opts, renderer.WithHeadless(o.width, o.height))
	}
	return opts, nil
}

func run(o options) error {
	rOpts, err := o.rendererOptions()
	if err != nil {
		return err
	}

	var win window.Window
	if !o.headless {
		win, err = window.NewWindow(
			window.WithTitle("Ray Tracing"),
			window.WithSize(o.width, o.height),
		)
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rOpts...)
	if err != nil {
		if win != nil {
			_ = win.Close()
		}
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	engOpts := []engine.EngineBuilderOption{
		engine.WithRenderer(r),
		engine.WithScenePath(o.scenePath),
		engine.WithExportPath(o.out),
		engine.WithHeadlessFrames(o.frames),
		engine.WithProfiling(o.profile),
	}
	if win != nil {
		engOpts = append(engOpts, engine.WithWindow(win))
	}
	eng, err := engine.NewEngine(engOpts...)
	if err != nil {
		r.Release()
		if win != nil {
			_ = win.Close()
		}
		return err
	}
	defer eng.Release()

	return eng.Run()
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Printf("[Main] %v", err)
		os.Exit(2)
	}
	if err := run(o); err != nil {
		log.Printf("[Main] %v", err)
		os.Exit(1)
	}
}
