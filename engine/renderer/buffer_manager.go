package renderer

import (
	"fmt"
	"log"

	"github.com/Brooklyn-Dev/ray-tracing/engine/entity"
)

// bufferManager maps each entity kind to its storage buffer at the kind's fixed slot.
// Every count change is a full reallocation to exactly count records. WebGPU storage
// bindings cannot be empty, so a count of zero is backed by a single zeroed record
// while the logical capacity stays zero.
type bufferManager struct {
	backend   RendererBackend
	capacity  [len(entity.Kinds)]int
	allocated [len(entity.Kinds)]bool
}

func newBufferManager(backend RendererBackend) *bufferManager {
	return &bufferManager{backend: backend}
}

// ensureCapacity reallocates the buffer for kind when count differs from the last allocation.
func (m *bufferManager) ensureCapacity(kind entity.Kind, count int) error {
	if m.allocated[kind] && m.capacity[kind] == count {
		return nil
	}

	records := max(count, 1)
	size := uint64(records * kind.RecordSize())
	if err := m.backend.AllocateEntityBuffer(int(kind), size); err != nil {
		m.allocated[kind] = false
		m.capacity[kind] = 0
		return fmt.Errorf("%w: %s buffer of %d bytes: %w", ErrAllocation, kind, size, err)
	}

	if m.allocated[kind] {
		log.Printf("[Renderer] Reallocated %s buffer: %d -> %d records", kind, m.capacity[kind], count)
	}
	m.capacity[kind] = count
	m.allocated[kind] = true
	return nil
}

// upload writes the full record array at offset 0. Empty arrays leave the placeholder untouched.
func (m *bufferManager) upload(kind entity.Kind, data []byte) {
	if !m.allocated[kind] || len(data) == 0 {
		return
	}
	m.backend.WriteEntityBuffer(int(kind), data)
}

// sync sizes and uploads every kind from store.
func (m *bufferManager) sync(store *entity.Store) error {
	for _, kind := range entity.Kinds {
		if err := m.ensureCapacity(kind, store.Count(kind)); err != nil {
			return err
		}
		m.upload(kind, store.Bytes(kind))
	}
	return nil
}

// capacityOf returns the record count the buffer for kind was last sized for.
func (m *bufferManager) capacityOf(kind entity.Kind) int {
	return m.capacity[kind]
}

func (m *bufferManager) release() {
	for _, kind := range entity.Kinds {
		if m.allocated[kind] {
			m.backend.ReleaseEntityBuffer(int(kind))
		}
		m.allocated[kind] = false
		m.capacity[kind] = 0
	}
}
