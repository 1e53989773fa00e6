package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithKernelSource replaces the built-in path tracing kernel with custom WGSL.
// The kernel must declare the bindings listed in shader.KernelBindGroupLayout and an fs_main entry point.
//
// Parameters:
//   - source: the WGSL source, or "" for the built-in kernel
//
// Returns:
//   - RendererBuilderOption: a function that applies the kernel source option to a renderer
func WithKernelSource(source string) RendererBuilderOption {
	return func(r *renderer) {
		r.kernelSource = source
	}
}

// WithPoseTolerance makes camera change detection tolerate per-component differences up to eps.
// The default of 0 compares poses exactly.
//
// Parameters:
//   - eps: the largest component difference still treated as the same pose
//
// Returns:
//   - RendererBuilderOption: a function that applies the pose tolerance option to a renderer
func WithPoseTolerance(eps float32) RendererBuilderOption {
	return func(r *renderer) {
		r.poseTolerance = max(eps, 0)
	}
}

// WithHeadless renders offscreen at a fixed size without a window or swapchain.
//
// Parameters:
//   - width: the surface width in pixels
//   - height: the surface height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the headless option to a renderer
func WithHeadless(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.headless = true
		r.headlessWidth = width
		r.headlessHeight = height
	}
}

// WithRowWorkers sets how many workers convert image rows for skybox staging and export.
// Defaults to the number of CPUs.
//
// Parameters:
//   - workers: the worker count; 1 converts on the calling goroutine
//
// Returns:
//   - RendererBuilderOption: a function that applies the row worker option to a renderer
func WithRowWorkers(workers int) RendererBuilderOption {
	return func(r *renderer) {
		r.rowWorkers = max(workers, 1)
	}
}
