package engine

import (
	"github.com/Brooklyn-Dev/ray-tracing/engine/camera"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer"
	"github.com/Brooklyn-Dev/ray-tracing/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine presents to and reads input from.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the path tracing core. Required.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera traced from each frame.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithController sets the controller receiving keyboard and mouse input.
// It replaces the camera's controller when both are given.
//
// Parameters:
//   - c: the camera controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(c camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithScenePath sets the scene file loaded at startup and by ReloadScene.
func WithScenePath(path string) EngineBuilderOption {
	return func(e *engine) {
		e.scenePath = path
	}
}

// WithExportPath sets the PNG file written by SaveImage. Empty keeps DefaultExportPath.
func WithExportPath(path string) EngineBuilderOption {
	return func(e *engine) {
		if path != "" {
			e.exportPath = path
		}
	}
}

// WithHeadlessFrames sets how many passes a headless run accumulates before exporting.
// Values below 1 are treated as 1.
func WithHeadlessFrames(frames int) EngineBuilderOption {
	return func(e *engine) {
		e.headlessFrames = max(frames, 1)
	}
}
