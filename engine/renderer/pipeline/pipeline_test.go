package pipeline

import (
	"testing"

	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("kernel")
	if p.PipelineKey() != "kernel" {
		t.Errorf("key = %q", p.PipelineKey())
	}
	if p.TargetFormat() != wgpu.TextureFormatRGBA8Unorm {
		t.Errorf("target format = %v", p.TargetFormat())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.CullMode() != wgpu.CullModeNone {
		t.Error("unexpected primitive defaults")
	}
	if p.RenderPipeline() != nil || p.BindGroupLayout(0) != nil {
		t.Error("unregistered pipeline holds GPU objects")
	}
	p.Release()
}

func TestPipelineShaders(t *testing.T) {
	vs := shader.NewFullscreenVertexShader()
	fs := shader.NewPresentShader()
	p := NewPipeline("present",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithTargetFormat(wgpu.TextureFormatBGRA8Unorm),
	)
	if p.Shader(shader.ShaderTypeVertex) != vs || p.Shader(shader.ShaderTypeFragment) != fs {
		t.Error("shaders not attached")
	}
	if p.TargetFormat() != wgpu.TextureFormatBGRA8Unorm {
		t.Error("target format option ignored")
	}
	if p.BindGroupLayout(-1) != nil || p.BindGroupLayout(3) != nil {
		t.Error("out of range layout lookup returned a value")
	}
}
