package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/Brooklyn-Dev/ray-tracing/engine/camera"
	"github.com/Brooklyn-Dev/ray-tracing/engine/entity"
	"github.com/Brooklyn-Dev/ray-tracing/engine/environment"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/pipeline"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/shader"
	"github.com/Brooklyn-Dev/ray-tracing/engine/scene"
	"github.com/Brooklyn-Dev/ray-tracing/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Limits applied to the tracing parameters.
const (
	MaxSamplesPerPixel = 512
	MaxBounceLimit     = 32
)

// Pipeline keys.
const (
	KernelPipelineKey  = "pathtrace"
	PresentPipelineKey = "present"
)

// renderer is the implementation of the Renderer interface.
// It performs no locking: exactly one goroutine, the one owning the graphics context, may call it.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend

	pipelineCache map[string]pipeline.Pipeline

	store   *entity.Store
	buffers *bufferManager
	targets *renderTargets
	acc     *accumulator
	env     *environment.Environment
	rows    *common.RowWorker

	gamma           float32
	maxBounces      int
	samplesPerPixel int

	lastRenderTime time.Duration
	releaseOnce    sync.Once

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	kernelSource         string
	poseTolerance        float32
	headless             bool
	headlessWidth        int
	headlessHeight       int
	rowWorkers           int
}

// Renderer is the progressive path tracing core.
//
// It owns every GPU resource (entity buffers, accumulation and display surfaces, the skybox,
// pipelines and the device) and decides when accumulated radiance is discarded. Accumulation
// restarts when the camera pose changes, when a tracing or environment parameter is set to a
// new value, when a scene is loaded and when the viewport is resized. Setting a parameter to
// its current value never restarts accumulation.
type Renderer interface {
	// LoadScene replaces the entity arrays and applies the scene's tracing and environment
	// parameters, then unconditionally restarts accumulation.
	// An invalid scene is rejected and the current scene stays active.
	//
	// Parameters:
	//   - s: the scene to load
	//
	// Returns:
	//   - error: scene.ErrInvalidScene if s fails validation
	LoadScene(s *scene.Scene) error

	// UploadSpheres replaces the sphere array and uploads it to slot 0.
	// Accumulation is not restarted; call Reset after editing geometry.
	//
	// Returns:
	//   - error: ErrAllocation if the buffer could not be sized
	UploadSpheres(spheres []entity.Sphere) error

	// UploadPlanes replaces the plane array and uploads it to slot 1.
	//
	// Returns:
	//   - error: ErrAllocation if the buffer could not be sized
	UploadPlanes(planes []entity.Plane) error

	// UploadQuads replaces the quad array and uploads it to slot 2.
	//
	// Returns:
	//   - error: ErrAllocation if the buffer could not be sized
	UploadQuads(quads []entity.Quad) error

	// EntityCapacity returns the number of records the buffer for kind is currently sized for.
	EntityCapacity(kind entity.Kind) int

	// Render runs one accumulation pass from pose. Every entity array is re-uploaded first.
	// A failed frame is logged and skipped; the renderer stays usable.
	//
	// Parameters:
	//   - pose: the camera pose to trace from
	//
	// Returns:
	//   - bool: true if a pass was accumulated
	Render(pose camera.Pose) bool

	// Reset zeroes the accumulation surface and sets the frame counter to 1.
	Reset()

	// Frame returns the frame counter: the index of the next pass to accumulate.
	Frame() uint32

	// Resize recreates both surfaces at the new dimensions and restarts accumulation.
	// Zero or unchanged dimensions are ignored.
	Resize(width, height int)

	// DisplaySurface returns the handle of the current display surface.
	// The handle is reissued on resize.
	DisplaySurface() SurfaceHandle

	SetGamma(gamma float32)
	Gamma() float32
	SetMaxBounces(bounces int)
	MaxBounces() int
	SetSamplesPerPixel(spp int)
	SamplesPerPixel() int

	// SetSkybox loads the image at path as the skybox, replacing any previous one.
	// An empty path clears the skybox. On failure the previous skybox stays bound.
	//
	// Parameters:
	//   - path: the image file, or "" to clear
	//
	// Returns:
	//   - bool: false if the image could not be loaded
	SetSkybox(path string) bool

	// SetSkyboxExposure sets the skybox exposure in EV stops.
	SetSkyboxExposure(ev float32)

	// SetSunAngles sets the sun elevation and azimuth in degrees.
	SetSunAngles(pitch, yaw float32)

	SetSunColour(colour mgl32.Vec3)
	SetSunIntensity(intensity float32)
	SetSunFocus(focus float32)

	// Environment returns a copy of the lighting state. Changes to it do not affect the renderer.
	Environment() *environment.Environment

	// SetPresentMode sets how frames are delivered to the display.
	SetPresentMode(mode PresentMode)

	// Present blits the display surface to the window. A no-op when headless.
	Present() error

	// SaveImage reads back the display surface and writes it as a PNG.
	//
	// Parameters:
	//   - path: the output file
	//
	// Returns:
	//   - error: ErrNoDisplaySurface or ErrInvalidDimensions, or an I/O error
	SaveImage(path string) error

	// LastRenderTime returns how long the last successful Render call took.
	LastRenderTime() time.Duration

	// Release frees every GPU resource: render targets, entity buffers, the skybox,
	// pipelines, then the device. Safe to call more than once.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer on the selected GPU backend.
// The backend renders into the window's surface, or offscreen when WithHeadless is given.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window to present to; may be nil when headless
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the initialized renderer
//   - error: an error if the device, pipelines or render targets could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	var surfaceDescriptor *wgpu.SurfaceDescriptor
	width, height := r.headlessWidth, r.headlessHeight
	if !r.headless {
		if win == nil {
			return nil, errors.New("renderer needs a window unless headless")
		}
		surfaceDescriptor = win.SurfaceDescriptor()
		width, height = win.Width(), win.Height()
	}

	var backend RendererBackend
	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}

	if err := r.init(backend, width, height); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

// NewRendererWithBackend creates a Renderer on an already created backend.
//
// Parameters:
//   - backend: the backend to render with
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the initialized renderer
//   - error: an error if pipelines or render targets could not be created
func NewRendererWithBackend(backend RendererBackend, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(BackendTypeWGPU, options...)
	if err := r.init(backend, width, height); err != nil {
		return nil, err
	}
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		backendType:     backendType,
		pipelineCache:   make(map[string]pipeline.Pipeline),
		store:           entity.NewStore(),
		env:             environment.New(),
		gamma:           scene.DefaultGamma,
		maxBounces:      scene.DefaultMaxBounces,
		samplesPerPixel: scene.DefaultSamplesPerPixel,
		rowWorkers:      runtime.NumCPU(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	r.acc = newAccumulator(r.poseTolerance)
	r.rows = common.NewRowWorker(r.rowWorkers)
	return r
}

func (r *renderer) init(backend RendererBackend, width, height int) error {
	r.backend = backend
	r.buffers = newBufferManager(backend)
	r.targets = newRenderTargets(backend)

	if r.pendingPresentMode != nil {
		backend.SetPresentMode(*r.pendingPresentMode)
	}

	fullscreen := shader.NewFullscreenVertexShader()
	pipelines := []pipeline.Pipeline{
		pipeline.NewPipeline(KernelPipelineKey,
			pipeline.WithVertexShader(fullscreen),
			pipeline.WithFragmentShader(shader.NewKernelShader(r.kernelSource)),
			pipeline.WithTargetFormat(wgpu.TextureFormatRGBA8Unorm),
		),
	}
	if !r.headless {
		pipelines = append(pipelines, pipeline.NewPipeline(PresentPipelineKey,
			pipeline.WithVertexShader(fullscreen),
			pipeline.WithFragmentShader(shader.NewPresentShader()),
			pipeline.WithTargetFormat(backend.SurfaceFormat()),
		))
	}
	for _, p := range pipelines {
		if err := backend.RegisterPipeline(p); err != nil {
			r.releasePipelines()
			return fmt.Errorf("failed to register pipeline %s: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}

	if _, err := r.targets.resize(width, height); err != nil {
		r.releasePipelines()
		return fmt.Errorf("failed to create render targets: %w", err)
	}
	if err := r.buffers.sync(r.store); err != nil {
		log.Printf("[Renderer] %v", err)
	}
	r.Reset()
	return nil
}

func (r *renderer) LoadScene(s *scene.Scene) error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", scene.ErrInvalidScene)
	}
	if err := s.Validate(); err != nil {
		return err
	}

	r.store.Load(s.Spheres, s.Planes, s.Quads)
	r.gamma = s.Tracing.Gamma
	r.maxBounces = common.Clamp(s.Tracing.MaxBounces, 1, MaxBounceLimit)
	r.samplesPerPixel = common.Clamp(s.Tracing.SamplesPerPixel, 1, MaxSamplesPerPixel)

	e := s.Environment
	r.env.SetExposureEV(e.ExposureEV)
	r.env.SetSunAngles(e.SunPitch, e.SunYaw)
	r.env.SetSunColour(mgl32.Vec3(e.SunColour))
	r.env.SetSunIntensity(e.SunIntensity)
	r.env.SetSunFocus(e.SunFocus)
	if _, err := r.loadSkybox(e.SkyboxPath); err != nil {
		log.Printf("[Renderer] Scene %q: failed to load skybox %s: %v", s.Name, e.SkyboxPath, err)
		if r.env.ClearSkybox() {
			r.backend.ReleaseSkybox()
		}
	}

	if err := r.buffers.sync(r.store); err != nil {
		log.Printf("[Renderer] %v", err)
	}
	r.Reset()

	log.Printf("[Renderer] Loaded scene %q: %d spheres, %d planes, %d quads",
		s.Name, r.store.Count(entity.KindSphere), r.store.Count(entity.KindPlane), r.store.Count(entity.KindQuad))
	return nil
}

func (r *renderer) UploadSpheres(spheres []entity.Sphere) error {
	r.store.SetSpheres(spheres)
	return r.uploadKind(entity.KindSphere)
}

func (r *renderer) UploadPlanes(planes []entity.Plane) error {
	r.store.SetPlanes(planes)
	return r.uploadKind(entity.KindPlane)
}

func (r *renderer) UploadQuads(quads []entity.Quad) error {
	r.store.SetQuads(quads)
	return r.uploadKind(entity.KindQuad)
}

func (r *renderer) uploadKind(kind entity.Kind) error {
	if err := r.buffers.ensureCapacity(kind, r.store.Count(kind)); err != nil {
		return err
	}
	r.buffers.upload(kind, r.store.Bytes(kind))
	return nil
}

func (r *renderer) EntityCapacity(kind entity.Kind) int {
	return r.buffers.capacityOf(kind)
}

func (r *renderer) Render(pose camera.Pose) bool {
	if !r.targets.created {
		return false
	}
	start := time.Now()

	if r.acc.poseChanged(pose) {
		r.Reset()
	}

	if err := r.buffers.sync(r.store); err != nil {
		log.Printf("[Renderer] Skipping frame %d: %v", r.acc.frame, err)
		return false
	}
	if err := r.backend.BindFramebuffer(); err != nil {
		log.Printf("[Renderer] Skipping frame %d: %v", r.acc.frame, err)
		return false
	}
	if err := r.backend.Dispatch(r.pipelineCache[KernelPipelineKey], r.frameUniforms(pose)); err != nil {
		log.Printf("[Renderer] Skipping frame %d: %v", r.acc.frame, err)
		return false
	}

	r.acc.advance(pose)
	r.lastRenderTime = time.Since(start)
	return true
}

func (r *renderer) frameUniforms(pose camera.Pose) *GPUFrameUniforms {
	hasSkybox := uint32(0)
	if r.env.HasSkybox() {
		hasSkybox = 1
	}
	return &GPUFrameUniforms{
		Resolution:      [2]float32{float32(r.targets.width), float32(r.targets.height)},
		Frame:           r.acc.frame,
		SamplesPerPixel: uint32(r.samplesPerPixel),
		CameraPosition:  pose.Position,
		Gamma:           r.gamma,
		CameraForward:   pose.Forward,
		MaxBounces:      uint32(r.maxBounces),
		CameraRight:     pose.Right,
		NumSpheres:      uint32(r.store.Count(entity.KindSphere)),
		CameraUp:        pose.Up,
		NumPlanes:       uint32(r.store.Count(entity.KindPlane)),
		SunDirection:    r.env.SunDirection(),
		SunIntensity:    r.env.SunIntensity(),
		SunColour:       r.env.SunColour(),
		SunFocus:        r.env.SunFocus(),
		NumQuads:        uint32(r.store.Count(entity.KindQuad)),
		HasSkybox:       hasSkybox,
		SkyboxExposure:  r.env.SkyboxExposure(),
	}
}

func (r *renderer) Reset() {
	r.acc.rearm()
	if r.targets != nil && r.targets.created {
		r.backend.ClearAccumulation()
	}
}

func (r *renderer) Frame() uint32 {
	return r.acc.frame
}

func (r *renderer) Resize(width, height int) {
	changed, err := r.targets.resize(width, height)
	if err != nil {
		log.Printf("[Renderer] Failed to resize render targets to %dx%d: %v", width, height, err)
		return
	}
	if changed {
		r.Reset()
	}
}

func (r *renderer) DisplaySurface() SurfaceHandle {
	return r.targets.handle()
}

func (r *renderer) SetGamma(gamma float32) {
	if gamma <= 0 || gamma == r.gamma {
		return
	}
	r.gamma = gamma
	r.Reset()
}

func (r *renderer) Gamma() float32 {
	return r.gamma
}

func (r *renderer) SetMaxBounces(bounces int) {
	bounces = common.Clamp(bounces, 1, MaxBounceLimit)
	if bounces == r.maxBounces {
		return
	}
	r.maxBounces = bounces
	r.Reset()
}

func (r *renderer) MaxBounces() int {
	return r.maxBounces
}

func (r *renderer) SetSamplesPerPixel(spp int) {
	spp = common.Clamp(spp, 1, MaxSamplesPerPixel)
	if spp == r.samplesPerPixel {
		return
	}
	r.samplesPerPixel = spp
	r.Reset()
}

func (r *renderer) SamplesPerPixel() int {
	return r.samplesPerPixel
}

func (r *renderer) SetSkybox(path string) bool {
	changed, err := r.loadSkybox(path)
	if err != nil {
		log.Printf("[Renderer] Failed to load skybox %s: %v", path, err)
		return false
	}
	if changed {
		r.Reset()
	}
	return true
}

// loadSkybox binds the image at path, or clears the skybox for an empty path.
// It reports whether the bound skybox changed.
func (r *renderer) loadSkybox(path string) (bool, error) {
	if path == "" {
		if r.env.ClearSkybox() {
			r.backend.ReleaseSkybox()
			return true, nil
		}
		return false, nil
	}
	if r.env.HasSkybox() && r.env.SkyboxPath() == path {
		return false, nil
	}

	data, err := environment.LoadSkybox(path, r.backend.MaxTextureDimension(), r.rows)
	if err != nil {
		return false, err
	}
	if err := r.backend.UploadSkybox(data); err != nil {
		return false, fmt.Errorf("failed to upload skybox: %w", err)
	}
	r.env.SetSkybox(path)
	log.Printf("[Renderer] Loaded skybox %s (%dx%d)", path, data.Width, data.Height)
	return true, nil
}

func (r *renderer) SetSkyboxExposure(ev float32) {
	if r.env.SetExposureEV(ev) {
		r.Reset()
	}
}

func (r *renderer) SetSunAngles(pitch, yaw float32) {
	if r.env.SetSunAngles(pitch, yaw) {
		r.Reset()
	}
}

func (r *renderer) SetSunColour(colour mgl32.Vec3) {
	if r.env.SetSunColour(colour) {
		r.Reset()
	}
}

func (r *renderer) SetSunIntensity(intensity float32) {
	if r.env.SetSunIntensity(intensity) {
		r.Reset()
	}
}

func (r *renderer) SetSunFocus(focus float32) {
	if r.env.SetSunFocus(focus) {
		r.Reset()
	}
}

func (r *renderer) Environment() *environment.Environment {
	snapshot := *r.env
	return &snapshot
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Present() error {
	if r.headless {
		return nil
	}
	if !r.targets.created {
		return ErrNoDisplaySurface
	}
	return r.backend.Present(r.pipelineCache[PresentPipelineKey])
}

func (r *renderer) LastRenderTime() time.Duration {
	return r.lastRenderTime
}

func (r *renderer) Release() {
	r.releaseOnce.Do(func() {
		if r.backend == nil {
			return
		}
		r.targets.release()
		r.buffers.release()
		if r.env.ClearSkybox() {
			r.backend.ReleaseSkybox()
		}
		r.releasePipelines()
		r.backend.Release()
		log.Printf("[Renderer] Released")
	})
}

func (r *renderer) releasePipelines() {
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
}
