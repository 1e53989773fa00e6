package bind_group_provider

import (
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label passed to the bind group descriptor.
	label string

	// bindGroup is rebuilt by the backend whenever dirty is set.
	bindGroup *wgpu.BindGroup
	dirty     bool

	buffers      map[int]*wgpu.Buffer
	bufferSizes  map[int]uint64
	textureViews map[int]*wgpu.TextureView
	samplers     map[int]*wgpu.Sampler
}

// BindGroupProvider owns the GPU resources bound to one bind group and tracks
// whether the bind group still references them.
//
// Usage pattern:
//  1. The backend creates a provider per pipeline bind group
//  2. Buffers, views and samplers are swapped in as they are (re)allocated; each swap
//     releases the previous resource and marks the provider dirty
//  3. Before encoding a pass the backend calls Entries() and SetBindGroup() if Dirty()
//  4. Release() frees everything the provider owns
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Dirty reports whether a resource changed since the bind group was last set.
	//
	// Returns:
	//   - bool: true if the bind group must be rebuilt
	Dirty() bool

	// BindGroup returns the current bind group, or nil if none has been built.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// SetBindGroup replaces the bind group, releasing the previous one, and clears the dirty flag.
	//
	// Parameters:
	//   - bg: the newly created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// Buffer returns the buffer for a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// BufferSize returns the allocated byte size of the buffer at a binding, or 0.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - uint64: the buffer size in bytes
	BufferSize(binding int) uint64

	// SetBuffer stores a buffer for a binding, releasing any buffer it replaces.
	// A nil buffer removes the binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer, or nil
	//   - size: the allocated byte size of buf
	SetBuffer(binding int, buf *wgpu.Buffer, size uint64)

	// TextureView returns the texture view for a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// SetTextureView stores a texture view for a binding, releasing any view it replaces.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the texture view, or nil
	SetTextureView(binding int, tv *wgpu.TextureView)

	// Sampler returns the sampler for a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// SetSampler stores a sampler for a binding, releasing any sampler it replaces.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the sampler, or nil
	SetSampler(binding int, s *wgpu.Sampler)

	// Bindings returns every populated binding index in ascending order.
	//
	// Returns:
	//   - []int: the binding indices
	Bindings() []int

	// Entries returns the bind group entries for every populated binding in ascending order.
	//
	// Returns:
	//   - []wgpu.BindGroupEntry: the entries to build a bind group from
	Entries() []wgpu.BindGroupEntry
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
// A new provider is dirty until its first bind group is set.
//
// Parameters:
//   - label: the debug label for the provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		dirty:        true,
		buffers:      make(map[int]*wgpu.Buffer),
		bufferSizes:  make(map[int]uint64),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Dirty() bool {
	return p.dirty || p.bindGroup == nil
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
	p.dirty = false
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) BufferSize(binding int) uint64 {
	return p.bufferSizes[binding]
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer, size uint64) {
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	if buf == nil {
		delete(p.buffers, binding)
		delete(p.bufferSizes, binding)
	} else {
		p.buffers[binding] = buf
		p.bufferSizes[binding] = size
	}
	p.dirty = true
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	if old := p.textureViews[binding]; old != nil && old != tv {
		old.Release()
	}
	if tv == nil {
		delete(p.textureViews, binding)
	} else {
		p.textureViews[binding] = tv
	}
	p.dirty = true
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	if old := p.samplers[binding]; old != nil && old != s {
		old.Release()
	}
	if s == nil {
		delete(p.samplers, binding)
	} else {
		p.samplers[binding] = s
	}
	p.dirty = true
}

func (p *bindGroupProvider) Bindings() []int {
	bindings := make([]int, 0, len(p.buffers)+len(p.textureViews)+len(p.samplers))
	for b := range p.buffers {
		bindings = append(bindings, b)
	}
	for b := range p.textureViews {
		bindings = append(bindings, b)
	}
	for b := range p.samplers {
		bindings = append(bindings, b)
	}
	slices.Sort(bindings)
	return slices.Compact(bindings)
}

func (p *bindGroupProvider) Entries() []wgpu.BindGroupEntry {
	bindings := p.Bindings()
	entries := make([]wgpu.BindGroupEntry, 0, len(bindings))
	for _, b := range bindings {
		entry := wgpu.BindGroupEntry{Binding: uint32(b)}
		switch {
		case p.buffers[b] != nil:
			entry.Buffer = p.buffers[b]
			entry.Size = wgpu.WholeSize
		case p.textureViews[b] != nil:
			entry.TextureView = p.textureViews[b]
		case p.samplers[b] != nil:
			entry.Sampler = p.samplers[b]
		}
		entries = append(entries, entry)
	}
	return entries
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
		delete(p.bufferSizes, i)
	}
	p.dirty = true
}
