package renderer

import "errors"

var (
	// ErrFramebufferIncomplete is returned when the display surface cannot be rendered into.
	ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

	// ErrNoDisplaySurface is returned when an operation needs a display surface that does not exist.
	ErrNoDisplaySurface = errors.New("no display surface")

	// ErrInvalidDimensions is returned for zero or inconsistent surface dimensions.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrAllocation is returned when a GPU buffer or texture cannot be allocated.
	ErrAllocation = errors.New("gpu allocation failed")
)
