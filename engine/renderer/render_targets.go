package renderer

// SurfaceHandle identifies the display surface consumed by the presentation layer.
// A new Generation is issued every time the surfaces are recreated, so a handle
// must not be cached across a resize.
type SurfaceHandle struct {
	Generation uint64
	Width      int
	Height     int
}

// Valid reports whether the handle refers to a created surface.
func (h SurfaceHandle) Valid() bool {
	return h.Generation > 0 && h.Width > 0 && h.Height > 0
}

// renderTargets tracks the accumulation and display surfaces held by the backend.
type renderTargets struct {
	backend    RendererBackend
	width      int
	height     int
	generation uint64
	created    bool
}

func newRenderTargets(backend RendererBackend) *renderTargets {
	return &renderTargets{backend: backend}
}

// resize recreates both surfaces at the new dimensions.
// Zero or unchanged dimensions leave everything in place and report false.
func (t *renderTargets) resize(width, height int) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, nil
	}
	if t.created && width == t.width && height == t.height {
		return false, nil
	}

	t.release()
	t.backend.ConfigureSurface(width, height)
	if err := t.backend.CreateRenderTargets(width, height); err != nil {
		return false, err
	}
	t.width, t.height = width, height
	t.generation++
	t.created = true
	return true, nil
}

func (t *renderTargets) handle() SurfaceHandle {
	if !t.created {
		return SurfaceHandle{}
	}
	return SurfaceHandle{Generation: t.generation, Width: t.width, Height: t.height}
}

func (t *renderTargets) release() {
	if t.created {
		t.backend.ReleaseRenderTargets()
	}
	t.created = false
}
