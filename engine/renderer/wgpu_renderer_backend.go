package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"

	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/bind_group_provider"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/pipeline"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// displayFormat is the format of the display surface the kernel writes gamma-encoded colour into.
const displayFormat = wgpu.TextureFormatRGBA8Unorm

// readbackRowAlignment is the WebGPU requirement on BytesPerRow for texture to buffer copies.
const readbackRowAlignment = 256

type wgpuRendererBackendImpl struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	limits wgpu.Limits

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	// surface is nil when rendering headless
	surface *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	presentMode   wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)

	// kernel owns the entity buffers, accumulation buffer, frame uniforms, skybox view and sampler
	kernel bind_group_provider.BindGroupProvider
	// present owns the sampled display view and its sampler
	present bind_group_provider.BindGroupProvider

	width, height  uint32
	displayTexture *wgpu.Texture
	// displayView is the render attachment view of displayTexture
	displayView   *wgpu.TextureView
	skyboxTexture *wgpu.Texture

	pending []bind_group_provider.BufferWrite
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		instance:      wgpu.CreateInstance(nil),
		presentMode:   wgpu.PresentModeImmediate,
		surfaceFormat: displayFormat,
		limits:        wgpu.DefaultLimits(),
		kernel:        bind_group_provider.NewBindGroupProvider("Path Trace Kernel"),
		present:       bind_group_provider.NewBindGroupProvider("Present"),
	}
	if surfaceDescriptor != nil {
		b.surface = b.instance.CreateSurface(surfaceDescriptor)
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Path Trace Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: b.limits,
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if b.surface != nil {
		capabilities := b.surface.GetCapabilities(b.adapter)
		if len(capabilities.Formats) == 0 {
			b.Release()
			return nil, errors.New("surface reports no supported formats")
		}
		b.surfaceFormat = pickSurfaceFormat(capabilities.Formats)
		b.alphaMode = capabilities.AlphaModes[0]
	}

	if err := b.createStaticResources(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// pickSurfaceFormat prefers a linear 8-bit format: the display surface already holds gamma-encoded colour.
func pickSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return formats[0]
}

// createStaticResources creates the resources that live as long as the device:
// the frame uniform buffer, both samplers and the placeholder skybox.
func (b *wgpuRendererBackendImpl) createStaticResources() error {
	uniforms, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniforms Buffer",
		Size:  shader.FrameUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("%w: frame uniforms: %w", ErrAllocation, err)
	}
	b.kernel.SetBuffer(shader.BindingFrameUniforms, uniforms, shader.FrameUniformsSize)

	skySampler, err := b.createSampler("Skybox Sampler", common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeClampToEdge,
	})
	if err != nil {
		return err
	}
	b.kernel.SetSampler(shader.BindingSkyboxSampler, skySampler)

	displaySampler, err := b.createSampler("Display Sampler", common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeNearest,
		MinFilter:    wgpu.FilterModeNearest,
	})
	if err != nil {
		return err
	}
	b.present.SetSampler(shader.BindingDisplaySampler, displaySampler)

	b.ReleaseSkybox()
	if b.kernel.TextureView(shader.BindingSkybox) == nil {
		return fmt.Errorf("%w: placeholder skybox", ErrAllocation)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) createSampler(label string, data common.SamplerStagingData) (*wgpu.Sampler, error) {
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  common.Coalesce(data.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(data.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(data.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(data.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(data.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(data.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(data.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(data.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(data.MaxAnisotropy, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	return samp, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	if b.surface == nil || width <= 0 || height <= 0 {
		return
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
	if b.width > 0 && b.height > 0 {
		b.ConfigureSurface(int(b.width), int(b.height))
	}
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	return b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) MaxTextureDimension() int {
	return int(b.limits.MaxTextureDimension2D)
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	vs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: vertexShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: vertexShader.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", vertexShader.Key(), err)
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fragmentShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: fragmentShader.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", fragmentShader.Key(), err)
	}
	defer fs.Release()

	merged := mergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors())
	maxGroup := -1
	for g := range merged {
		maxGroup = max(maxGroup, g)
	}
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g, desc := range merged {
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			p.SetRenderPipeline(nil, bindGroupLayouts)
			p.Release()
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		p.SetRenderPipeline(nil, bindGroupLayouts)
		p.Release()
		return err
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    p.TargetFormat(),
					WriteMask: p.WriteMask(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.SetRenderPipeline(nil, bindGroupLayouts)
		p.Release()
		return err
	}

	p.SetRenderPipeline(created, bindGroupLayouts)
	return nil
}

func (b *wgpuRendererBackendImpl) AllocateEntityBuffer(slot int, size uint64) error {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("Entity Slot %d Buffer", slot),
		Size:  size,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		b.kernel.SetBuffer(slot, nil, 0)
		return err
	}
	b.kernel.SetBuffer(slot, buf, size)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteEntityBuffer(slot int, data []byte) {
	b.pending = append(b.pending, bind_group_provider.BufferWrite{
		Provider: b.kernel,
		Binding:  slot,
		Data:     data,
	})
}

func (b *wgpuRendererBackendImpl) ReleaseEntityBuffer(slot int) {
	b.kernel.SetBuffer(slot, nil, 0)
}

// flushWrites issues every queued buffer write in order.
func (b *wgpuRendererBackendImpl) flushWrites() {
	for _, w := range b.pending {
		if !w.Target() {
			log.Printf("[Renderer] Dropping %d byte write to %s binding %d", len(w.Data), w.Provider.Label(), w.Binding)
			continue
		}
		b.queue.WriteBuffer(w.Provider.Buffer(w.Binding), w.Offset, w.Data)
	}
	b.pending = b.pending[:0]
}

func (b *wgpuRendererBackendImpl) CreateRenderTargets(width, height int) error {
	w, h := uint32(width), uint32(height)
	if w > b.limits.MaxTextureDimension2D || h > b.limits.MaxTextureDimension2D {
		return fmt.Errorf("%w: %dx%d exceeds the %d texture limit", ErrInvalidDimensions, w, h, b.limits.MaxTextureDimension2D)
	}

	accumSize := uint64(w) * uint64(h) * 16
	if accumSize > b.limits.MaxStorageBufferBindingSize {
		return fmt.Errorf("%w: accumulation buffer of %d bytes exceeds the storage binding limit", ErrAllocation, accumSize)
	}
	accum, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Accumulation Buffer",
		Size:  accumSize,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("%w: accumulation buffer: %w", ErrAllocation, err)
	}
	b.kernel.SetBuffer(shader.BindingAccumulation, accum, accumSize)

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Display Texture",
		Usage:     wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
		Format:        displayFormat,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		b.ReleaseRenderTargets()
		return fmt.Errorf("%w: display texture: %w", ErrAllocation, err)
	}
	b.displayTexture = tex

	b.displayView, err = tex.CreateView(nil)
	if err != nil {
		b.ReleaseRenderTargets()
		return fmt.Errorf("%w: display view: %w", ErrFramebufferIncomplete, err)
	}
	sampled, err := tex.CreateView(nil)
	if err != nil {
		b.ReleaseRenderTargets()
		return fmt.Errorf("failed to create display binding view: %w", err)
	}
	b.present.SetTextureView(shader.BindingDisplayTexture, sampled)

	b.width, b.height = w, h
	return nil
}

func (b *wgpuRendererBackendImpl) ReleaseRenderTargets() {
	b.present.SetTextureView(shader.BindingDisplayTexture, nil)
	if b.displayView != nil {
		b.displayView.Release()
		b.displayView = nil
	}
	if b.displayTexture != nil {
		b.displayTexture.Release()
		b.displayTexture = nil
	}
	b.kernel.SetBuffer(shader.BindingAccumulation, nil, 0)
	b.width, b.height = 0, 0
}

func (b *wgpuRendererBackendImpl) ClearAccumulation() {
	accum := b.kernel.Buffer(shader.BindingAccumulation)
	if accum == nil {
		return
	}
	encoder, err := b.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Clear Encoder"})
	if err != nil {
		log.Printf("[Renderer] Failed to clear accumulation: %v", err)
		return
	}
	defer encoder.Release()
	encoder.ClearBuffer(accum, 0, b.kernel.BufferSize(shader.BindingAccumulation))
	b.submit(encoder)
}

func (b *wgpuRendererBackendImpl) BindFramebuffer() error {
	if b.displayTexture == nil || b.displayView == nil {
		return ErrFramebufferIncomplete
	}
	if b.kernel.Buffer(shader.BindingAccumulation) == nil {
		return fmt.Errorf("%w: no accumulation buffer", ErrFramebufferIncomplete)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) UploadSkybox(data common.TextureStagingData) error {
	format := common.Coalesce(data.Format, wgpu.TextureFormatRGBA8UnormSrgb)
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Skybox Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        format,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("%w: skybox texture: %w", ErrAllocation, err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.RowPitch(),
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	b.kernel.SetTextureView(shader.BindingSkybox, view)
	if b.skyboxTexture != nil {
		b.skyboxTexture.Release()
	}
	b.skyboxTexture = tex
	return nil
}

// ReleaseSkybox swaps in a single black texel so the kernel binding stays valid.
func (b *wgpuRendererBackendImpl) ReleaseSkybox() {
	err := b.UploadSkybox(common.TextureStagingData{
		Pixels:        make([]byte, 8),
		Width:         1,
		Height:        1,
		Format:        wgpu.TextureFormatRGBA16Float,
		BytesPerPixel: 8,
	})
	if err != nil {
		log.Printf("[Renderer] Failed to create placeholder skybox: %v", err)
	}
}

func (b *wgpuRendererBackendImpl) Dispatch(kernel pipeline.Pipeline, uniforms *GPUFrameUniforms) error {
	if kernel == nil || kernel.RenderPipeline() == nil {
		return errors.New("kernel pipeline is not registered")
	}
	if err := b.BindFramebuffer(); err != nil {
		return err
	}

	b.pending = append(b.pending, bind_group_provider.BufferWrite{
		Provider: b.kernel,
		Binding:  shader.BindingFrameUniforms,
		Data:     uniforms.Marshal(),
	})
	b.flushWrites()

	if err := b.rebuildBindGroup(b.kernel, kernel); err != nil {
		return err
	}
	return b.drawFullscreen("Path Trace", kernel, b.kernel, b.displayView)
}

func (b *wgpuRendererBackendImpl) Present(blit pipeline.Pipeline) error {
	if b.surface == nil {
		return nil
	}
	if blit == nil || blit.RenderPipeline() == nil {
		return errors.New("present pipeline is not registered")
	}
	if err := b.rebuildBindGroup(b.present, blit); err != nil {
		return err
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	if err := b.drawFullscreen("Present", blit, b.present, view); err != nil {
		return err
	}
	b.surface.Present()
	return nil
}

// rebuildBindGroup recreates the bind group of provider against group 0 of p when one of its resources changed.
func (b *wgpuRendererBackendImpl) rebuildBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline) error {
	if !provider.Dirty() {
		return nil
	}
	layout := p.BindGroupLayout(0)
	if layout == nil {
		return fmt.Errorf("pipeline %s has no bind group layout", p.PipelineKey())
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: provider.Entries(),
	})
	if err != nil {
		return fmt.Errorf("failed to create %s bind group: %w", provider.Label(), err)
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

// drawFullscreen records and submits one pass drawing the fullscreen triangle into target.
func (b *wgpuRendererBackendImpl) drawFullscreen(label string, p pipeline.Pipeline, provider bind_group_provider.BindGroupProvider, target *wgpu.TextureView) error {
	encoder, err := b.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label + " Encoder"})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: label + " Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	pass.SetPipeline(p.RenderPipeline())
	pass.SetBindGroup(0, provider.BindGroup(), nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	return b.submit(encoder)
}

func (b *wgpuRendererBackendImpl) submit(encoder *wgpu.CommandEncoder) error {
	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()
	b.queue.Submit(commandBuffer)
	return nil
}

func (b *wgpuRendererBackendImpl) ReadDisplaySurface() (Readback, error) {
	if b.displayTexture == nil || b.width == 0 || b.height == 0 {
		return Readback{}, ErrNoDisplaySurface
	}

	rowBytes := b.width * 4
	stride := (rowBytes + readbackRowAlignment - 1) / readbackRowAlignment * readbackRowAlignment
	size := uint64(stride) * uint64(b.height)

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Readback Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return Readback{}, fmt.Errorf("%w: readback buffer: %w", ErrAllocation, err)
	}
	defer buf.Release()

	encoder, err := b.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Readback Encoder"})
	if err != nil {
		return Readback{}, err
	}
	defer encoder.Release()
	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture: b.displayTexture,
			Aspect:  wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  stride,
				RowsPerImage: b.height,
			},
		},
		&wgpu.Extent3D{
			Width:              b.width,
			Height:             b.height,
			DepthOrArrayLayers: 1,
		},
	)
	if err := b.submit(encoder); err != nil {
		return Readback{}, err
	}

	status := wgpu.BufferMapAsyncStatusSuccess
	mapped := false
	buf.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
		mapped = true
	})
	for !mapped {
		b.device.Poll(true, nil)
	}
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return Readback{}, fmt.Errorf("failed to map readback buffer: status %d", status)
	}
	defer buf.Unmap()

	pixels := make([]byte, size)
	copy(pixels, buf.GetMappedRange(0, uint(size)))
	return Readback{
		Pixels: pixels,
		Width:  int(b.width),
		Height: int(b.height),
		Stride: int(stride),
	}, nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.pending = nil
	if b.kernel != nil {
		b.kernel.Release()
	}
	if b.present != nil {
		b.present.Release()
	}
	if b.displayView != nil {
		b.displayView.Release()
		b.displayView = nil
	}
	if b.displayTexture != nil {
		b.displayTexture.Release()
		b.displayTexture = nil
	}
	if b.skyboxTexture != nil {
		b.skyboxTexture.Release()
		b.skyboxTexture = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// mergeBindGroupLayouts unions the layouts declared by the vertex and fragment stages.
// A binding declared by both stages gets the OR of their visibilities.
func mergeBindGroupLayouts(
	vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor,
) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)
	for g, desc := range vertexLayouts {
		merged[g] = desc
	}

	for g, fDesc := range fragmentLayouts {
		vDesc, ok := merged[g]
		if !ok {
			merged[g] = fDesc
			continue
		}

		entryMap := make(map[uint32]wgpu.BindGroupLayoutEntry)
		for _, e := range vDesc.Entries {
			entryMap[e.Binding] = e
		}
		for _, e := range fDesc.Entries {
			if existing, ok := entryMap[e.Binding]; ok {
				existing.Visibility |= e.Visibility
				entryMap[e.Binding] = existing
			} else {
				entryMap[e.Binding] = e
			}
		}

		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(entryMap))
		for _, e := range entryMap {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		merged[g] = wgpu.BindGroupLayoutDescriptor{
			Label:   vDesc.Label,
			Entries: entries,
		}
	}
	return merged
}
