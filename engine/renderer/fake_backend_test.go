package renderer

import (
	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeBackend records every call the renderer makes so tests can assert on
// allocation sizes, clears and dispatched uniforms without a GPU.
type fakeBackend struct {
	pipelines   []string
	presentMode PresentMode

	allocations map[int][]uint64
	live        map[int]uint64
	written     map[int][]byte

	targets         [][2]int
	configured      [][2]int
	targetsReleased int
	clears          int

	skyboxes        []common.TextureStagingData
	skyboxReleases  int
	dispatches      []GPUFrameUniforms
	presents        int
	readback        Readback
	released        int
	calls           []string
	failAlloc       bool
	failFramebuffer bool
	failTargets     bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		allocations: make(map[int][]uint64),
		live:        make(map[int]uint64),
		written:     make(map[int][]byte),
	}
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.configured = append(f.configured, [2]int{width, height})
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat { return wgpu.TextureFormatBGRA8Unorm }

func (f *fakeBackend) MaxTextureDimension() int { return 8192 }

func (f *fakeBackend) RegisterPipeline(p pipeline.Pipeline) error {
	f.pipelines = append(f.pipelines, p.PipelineKey())
	return nil
}

func (f *fakeBackend) AllocateEntityBuffer(slot int, size uint64) error {
	if f.failAlloc {
		delete(f.live, slot)
		return errFakeAlloc
	}
	f.allocations[slot] = append(f.allocations[slot], size)
	f.live[slot] = size
	return nil
}

func (f *fakeBackend) WriteEntityBuffer(slot int, data []byte) {
	f.written[slot] = append([]byte(nil), data...)
}

func (f *fakeBackend) ReleaseEntityBuffer(slot int) {
	delete(f.live, slot)
	f.calls = append(f.calls, "ReleaseEntityBuffer")
}

func (f *fakeBackend) CreateRenderTargets(width, height int) error {
	if f.failTargets {
		return errFakeAlloc
	}
	f.targets = append(f.targets, [2]int{width, height})
	return nil
}

func (f *fakeBackend) ReleaseRenderTargets() {
	f.targetsReleased++
	f.calls = append(f.calls, "ReleaseRenderTargets")
}

func (f *fakeBackend) ClearAccumulation() { f.clears++ }

func (f *fakeBackend) BindFramebuffer() error {
	if f.failFramebuffer {
		return ErrFramebufferIncomplete
	}
	return nil
}

func (f *fakeBackend) UploadSkybox(data common.TextureStagingData) error {
	f.skyboxes = append(f.skyboxes, data)
	return nil
}

func (f *fakeBackend) ReleaseSkybox() {
	f.skyboxReleases++
	f.calls = append(f.calls, "ReleaseSkybox")
}

func (f *fakeBackend) Dispatch(kernel pipeline.Pipeline, uniforms *GPUFrameUniforms) error {
	f.dispatches = append(f.dispatches, *uniforms)
	return nil
}

func (f *fakeBackend) ReadDisplaySurface() (Readback, error) { return f.readback, nil }

func (f *fakeBackend) Present(blit pipeline.Pipeline) error {
	f.presents++
	return nil
}

func (f *fakeBackend) Release() {
	f.released++
	f.calls = append(f.calls, "Release")
}

func (f *fakeBackend) lastDispatch() GPUFrameUniforms {
	if len(f.dispatches) == 0 {
		return GPUFrameUniforms{}
	}
	return f.dispatches[len(f.dispatches)-1]
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

const errFakeAlloc = fakeError("out of memory")
