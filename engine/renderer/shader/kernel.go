package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

// Kernel bind group 0 slots. Slots 0..2 are fixed per entity kind and must match
// the WGSL declarations in assets/pathtrace.wgsl.
const (
	BindingSpheres       = 0
	BindingPlanes        = 1
	BindingQuads         = 2
	BindingAccumulation  = 3
	BindingFrameUniforms = 4
	BindingSkybox        = 5
	BindingSkyboxSampler = 6
)

// Present bind group 0 slots.
const (
	BindingDisplayTexture = 0
	BindingDisplaySampler = 1
)

// FrameUniformsSize is the byte size of the FrameUniforms WGSL struct.
const FrameUniformsSize = 128

// FullscreenSource draws a single triangle covering the viewport.
//
//go:embed assets/fullscreen.wgsl
var FullscreenSource string

// PathTraceSource is the default progressive path tracing kernel.
//
//go:embed assets/pathtrace.wgsl
var PathTraceSource string

// PresentSource copies the display surface to the swapchain.
//
//go:embed assets/present.wgsl
var PresentSource string

// KernelBindGroupLayout returns the layout every path tracing kernel must declare for group 0.
func KernelBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	storage := func(binding uint32, t wgpu.BufferBindingType) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: wgpu.ShaderStageFragment}
		e.Buffer.Type = t
		return e
	}

	uniforms := storage(BindingFrameUniforms, wgpu.BufferBindingTypeUniform)
	uniforms.Buffer.MinBindingSize = FrameUniformsSize

	skybox := wgpu.BindGroupLayoutEntry{Binding: BindingSkybox, Visibility: wgpu.ShaderStageFragment}
	skybox.Texture.SampleType = wgpu.TextureSampleTypeFloat
	skybox.Texture.ViewDimension = wgpu.TextureViewDimension2D

	sampler := wgpu.BindGroupLayoutEntry{Binding: BindingSkyboxSampler, Visibility: wgpu.ShaderStageFragment}
	sampler.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label: "Path Trace Kernel Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			storage(BindingSpheres, wgpu.BufferBindingTypeReadOnlyStorage),
			storage(BindingPlanes, wgpu.BufferBindingTypeReadOnlyStorage),
			storage(BindingQuads, wgpu.BufferBindingTypeReadOnlyStorage),
			storage(BindingAccumulation, wgpu.BufferBindingTypeStorage),
			uniforms,
			skybox,
			sampler,
		},
	}
}

// PresentBindGroupLayout returns the layout of the swapchain blit.
func PresentBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	tex := wgpu.BindGroupLayoutEntry{Binding: BindingDisplayTexture, Visibility: wgpu.ShaderStageFragment}
	tex.Texture.SampleType = wgpu.TextureSampleTypeFloat
	tex.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samp := wgpu.BindGroupLayoutEntry{Binding: BindingDisplaySampler, Visibility: wgpu.ShaderStageFragment}
	samp.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Present Layout",
		Entries: []wgpu.BindGroupLayoutEntry{tex, samp},
	}
}

// NewFullscreenVertexShader returns the shared fullscreen triangle vertex stage.
func NewFullscreenVertexShader() Shader {
	return NewShader("fullscreen", ShaderTypeVertex, FullscreenSource)
}

// NewKernelShader wraps a path tracing kernel source with the kernel binding layout.
// An empty source selects PathTraceSource.
func NewKernelShader(source string) Shader {
	if source == "" {
		source = PathTraceSource
	}
	return NewShader("pathtrace", ShaderTypeFragment, source, WithBindGroupLayout(0, KernelBindGroupLayout()))
}

// NewPresentShader returns the swapchain blit fragment stage.
func NewPresentShader() Shader {
	return NewShader("present", ShaderTypeFragment, PresentSource, WithBindGroupLayout(0, PresentBindGroupLayout()))
}
