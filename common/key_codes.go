package common

// Virtual key codes delivered by the window layer.
// Printable keys use their ASCII value, the rest match GLFW.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeyB     = 66 // B key (ASCII)
	KeyG     = 71 // G key (ASCII)
	KeyH     = 72 // H key (ASCII)
	KeyJ     = 74 // J key (ASCII)
	KeyK     = 75 // K key (ASCII)
	KeyL     = 76 // L key (ASCII)
	KeyN     = 78 // N key (ASCII)
	KeyP     = 80 // P key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeyX     = 88 // X key (ASCII)
	KeyZ     = 90 // Z key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)

	KeyLeftBracket  = 91 // [ key (ASCII)
	KeyRightBracket = 93 // ] key (ASCII)
	KeyMinus        = 45 // - key (ASCII)
	KeyEqual        = 61 // = key (ASCII)
)

// Non-printable keys
const (
	KeyEsc          = 256 // Escape key (GLFW)
	KeyRight        = 262 // Right arrow (GLFW)
	KeyLeft         = 263 // Left arrow (GLFW)
	KeyDown         = 264 // Down arrow (GLFW)
	KeyUp           = 265 // Up arrow (GLFW)
	KeyLeftShift    = 340 // Left Shift (GLFW)
	KeyLeftControl  = 341 // Left Control (GLFW)
	KeyRightControl = 345 // Right Control (GLFW)
)
