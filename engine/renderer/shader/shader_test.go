package shader

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestKernelLayoutMatchesSource(t *testing.T) {
	s := NewKernelShader("")
	if s.Source() != PathTraceSource {
		t.Fatal("empty source did not select the default kernel")
	}
	if s.EntryPoint() != "fs_main" || s.ShaderType() != ShaderTypeFragment {
		t.Errorf("entry point = %q, type = %v", s.EntryPoint(), s.ShaderType())
	}

	layout := s.BindGroupLayoutDescriptor(0)
	if len(layout.Entries) != 7 {
		t.Fatalf("kernel layout has %d entries, want 7", len(layout.Entries))
	}
	for i, e := range layout.Entries {
		if int(e.Binding) != i {
			t.Errorf("entry %d has binding %d", i, e.Binding)
		}
		if !strings.Contains(s.Source(), fmt.Sprintf("@binding(%d)", i)) {
			t.Errorf("kernel source does not declare binding %d", i)
		}
	}

	for _, slot := range []int{BindingSpheres, BindingPlanes, BindingQuads} {
		if layout.Entries[slot].Buffer.Type != wgpu.BufferBindingTypeReadOnlyStorage {
			t.Errorf("slot %d is not read-only storage", slot)
		}
	}
	if layout.Entries[BindingAccumulation].Buffer.Type != wgpu.BufferBindingTypeStorage {
		t.Error("accumulation is not read-write storage")
	}
	if layout.Entries[BindingFrameUniforms].Buffer.MinBindingSize != FrameUniformsSize {
		t.Error("uniform binding size mismatch")
	}
}

func TestSlotOrderInSource(t *testing.T) {
	for name, decl := range map[string]string{
		"spheres": "@binding(0) var<storage, read> spheres",
		"planes":  "@binding(1) var<storage, read> planes",
		"quads":   "@binding(2) var<storage, read> quads",
	} {
		if !strings.Contains(PathTraceSource, decl) {
			t.Errorf("%s not declared at its fixed slot", name)
		}
	}
}

func TestCustomKernelAndOptions(t *testing.T) {
	s := NewKernelShader("@fragment fn main() {}")
	if s.Source() == PathTraceSource {
		t.Error("custom source ignored")
	}
	v := NewShader("v", ShaderTypeVertex, FullscreenSource, WithEntryPoint("main"))
	if v.EntryPoint() != "main" {
		t.Errorf("entry point = %q, want main", v.EntryPoint())
	}
	if len(v.BindGroupLayoutDescriptors()) != 0 {
		t.Error("vertex shader should declare no layouts")
	}
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewShader("empty", ShaderTypeFragment, "")
}

func TestPresentLayout(t *testing.T) {
	layout := NewPresentShader().BindGroupLayoutDescriptor(0)
	if len(layout.Entries) != 2 {
		t.Fatalf("present layout has %d entries", len(layout.Entries))
	}
	if layout.Entries[BindingDisplaySampler].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Error("present sampler not filtering")
	}
}
