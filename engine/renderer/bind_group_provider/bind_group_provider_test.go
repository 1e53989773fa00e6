package bind_group_provider

import (
	"testing"
)

func TestNewBindGroupProviderLabel(t *testing.T) {
	p := NewBindGroupProvider("kernel")
	if p.Label() != "kernel" {
		t.Errorf("label = %q, want kernel", p.Label())
	}
	if !p.Dirty() {
		t.Error("new provider should be dirty")
	}
	if len(p.Bindings()) != 0 || len(p.Entries()) != 0 {
		t.Error("new provider has bindings")
	}
}

func TestSetNilRemovesBinding(t *testing.T) {
	p := NewBindGroupProvider("empty")
	p.SetBuffer(3, nil, 0)
	p.SetTextureView(5, nil)
	p.SetSampler(6, nil)
	if len(p.Bindings()) != 0 {
		t.Errorf("bindings = %v, want none", p.Bindings())
	}
	if p.Buffer(3) != nil || p.BufferSize(3) != 0 {
		t.Error("nil buffer left a binding")
	}
	p.Release()
	p.Release()
}

func TestBufferWriteTarget(t *testing.T) {
	p := NewBindGroupProvider("uniforms")
	tests := []struct {
		name  string
		write BufferWrite
	}{
		{"no provider", BufferWrite{Binding: 0, Data: []byte{1}}},
		{"missing binding", BufferWrite{Provider: p, Binding: 4, Data: []byte{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.write.Target() {
				t.Error("write without a buffer reported a target")
			}
		})
	}
}
