// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds pixel data for a texture binding pending GPU upload.
// This is primarily used to stage the skybox image before the GPU texture is created.
type TextureStagingData struct {
	// Pixels is the raw pixel data, tightly packed row by row from the top-left corner.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Format is the GPU texture format the Pixels are encoded in. Zero means RGBA8UnormSrgb.
	Format wgpu.TextureFormat
	// BytesPerPixel is the size of a single texel in Pixels. Zero means 4.
	BytesPerPixel uint32
}

// RowPitch returns the number of bytes in a single row of Pixels.
//
// Returns:
//   - uint32: bytes per row
func (t TextureStagingData) RowPitch() uint32 {
	return t.Width * Coalesce(t.BytesPerPixel, 4)
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}
