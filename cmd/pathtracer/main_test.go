package main

import (
	"path/filepath"
	"testing"
)

func TestParseFlagsDefaults(t *testing.T) {
	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.width != 1280 || o.height != 720 || o.headless || !o.vsync || o.frames != 64 {
		t.Errorf("defaults = %+v", o)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width", "0"}},
		{"negative height", []string{"-height", "-5"}},
		{"headless without frames", []string{"-headless", "-frames", "0"}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args); err == nil {
				t.Errorf("parseFlags(%v) succeeded", tt.args)
			}
		})
	}
}

func TestRendererOptions(t *testing.T) {
	o, err := parseFlags([]string{"-headless", "-vsync=false", "-width", "64", "-height", "32"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	opts, err := o.rendererOptions()
	if err != nil {
		t.Fatalf("rendererOptions: %v", err)
	}
	if len(opts) != 3 {
		t.Errorf("got %d renderer options, want present mode, software and headless", len(opts))
	}

	o.kernel = filepath.Join(t.TempDir(), "missing.wgsl")
	if _, err := o.rendererOptions(); err == nil {
		t.Error("rendererOptions with a missing kernel file succeeded")
	}
}
