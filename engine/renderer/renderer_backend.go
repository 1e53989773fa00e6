package renderer

import (
	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Readback is a CPU copy of the display surface.
type Readback struct {
	// Pixels holds Height rows of Stride bytes, RGBA8.
	Pixels []byte
	Width  int
	Height int
	// Stride is the byte length of one row including any row padding.
	Stride int
	// BottomUp is set when the first row in Pixels is the bottom of the image.
	BottomUp bool
}

// RendererBackend is the GPU API seam of the Renderer. The Renderer decides when
// resources are created, cleared and released; the backend only knows how.
// Every method is called from the thread owning the graphics context.
type RendererBackend interface {
	// ConfigureSurface resizes the presentable surface. A no-op for headless backends.
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display.
	SetPresentMode(mode PresentMode)

	// SurfaceFormat returns the texture format of the presentable surface.
	SurfaceFormat() wgpu.TextureFormat

	// MaxTextureDimension returns the largest 2D texture edge the device accepts.
	MaxTextureDimension() int

	// RegisterPipeline creates the GPU objects for a pipeline description.
	//
	// Parameters:
	//   - p: the pipeline to create
	//
	// Returns:
	//   - error: an error if shader compilation or pipeline creation failed
	RegisterPipeline(p pipeline.Pipeline) error

	// AllocateEntityBuffer replaces the storage buffer bound at slot with a new one of exactly size bytes.
	//
	// Parameters:
	//   - slot: the kernel binding slot
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - error: an error if the allocation failed; the slot is then left unbound
	AllocateEntityBuffer(slot int, size uint64) error

	// WriteEntityBuffer writes data to the buffer at slot starting at offset 0.
	WriteEntityBuffer(slot int, data []byte)

	// ReleaseEntityBuffer frees the buffer at slot.
	ReleaseEntityBuffer(slot int)

	// CreateRenderTargets creates the accumulation and display surfaces with the given dimensions.
	//
	// Returns:
	//   - error: an error if either surface could not be created
	CreateRenderTargets(width, height int) error

	// ReleaseRenderTargets frees the accumulation and display surfaces.
	ReleaseRenderTargets()

	// ClearAccumulation zeroes the accumulation surface.
	ClearAccumulation()

	// BindFramebuffer targets the next pass at the display surface.
	//
	// Returns:
	//   - error: ErrFramebufferIncomplete if the surface cannot be rendered into
	BindFramebuffer() error

	// UploadSkybox replaces the skybox image.
	UploadSkybox(data common.TextureStagingData) error

	// ReleaseSkybox frees the skybox image. The kernel keeps a valid placeholder bound.
	ReleaseSkybox()

	// Dispatch runs one accumulation pass of the kernel into the display surface.
	//
	// Parameters:
	//   - kernel: the registered kernel pipeline
	//   - uniforms: the per-frame inputs
	//
	// Returns:
	//   - error: an error if the pass could not be encoded or submitted
	Dispatch(kernel pipeline.Pipeline, uniforms *GPUFrameUniforms) error

	// ReadDisplaySurface copies the display surface back to the CPU.
	ReadDisplaySurface() (Readback, error)

	// Present blits the display surface to the window.
	Present(blit pipeline.Pipeline) error

	// Release frees the device and every remaining backend object.
	Release()
}
