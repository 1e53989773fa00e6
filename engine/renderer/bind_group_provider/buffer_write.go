package bind_group_provider

// BufferWrite describes a single queued GPU buffer write targeting a specific binding
// on a BindGroupProvider at a given byte offset. Writes are flushed in submission order
// before the next pass is encoded.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Target reports whether the write still has a buffer to land in and fits inside it.
//
// Returns:
//   - bool: true if the write can be flushed
func (w BufferWrite) Target() bool {
	if w.Provider == nil || w.Provider.Buffer(w.Binding) == nil {
		return false
	}
	return w.Offset+uint64(len(w.Data)) <= w.Provider.BufferSize(w.Binding)
}
