package window

import "testing"

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	if w.Width() != 1280 || w.Height() != 720 {
		t.Errorf("size = %dx%d, want 1280x720", w.Width(), w.Height())
	}
	if w.IsRunning() {
		t.Error("window without a platform window reports running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("window without a platform window returned a surface descriptor")
	}
	if err := w.Close(); err == nil {
		t.Error("closing an uninitialized window succeeded")
	}
}

func TestNewEngineWindowClampsSize(t *testing.T) {
	tests := []struct {
		name          string
		options       []WindowBuilderOption
		width, height int
	}{
		{"within limits", []WindowBuilderOption{WithSize(800, 600)}, 800, 600},
		{"above max", []WindowBuilderOption{WithSize(5000, 5000), WithMaxSize(1920, 1080)}, 1920, 1080},
		{"below min", []WindowBuilderOption{WithSize(10, 10), WithMinSize(200, 100)}, 200, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEngineWindow(tt.options...)
			if w.Width() != tt.width || w.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", w.Width(), w.Height(), tt.width, tt.height)
			}
		})
	}
}

func TestSetTitleWithoutPlatformWindow(t *testing.T) {
	w := newEngineWindow(WithTitle("a"))
	w.SetTitle("b")
	if w.title != "b" {
		t.Errorf("title = %q, want b", w.title)
	}
}
