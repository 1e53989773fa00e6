package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFrameUniforms is the per-frame uniform block read by the kernel.
// Matches the WGSL FrameUniforms struct layout exactly.
// Size: 128 bytes (WGSL uniform layout, 16-byte aligned).
type GPUFrameUniforms struct {
	Resolution      [2]float32 // offset   0
	Frame           uint32     // offset   8: accumulation weight is 1/Frame
	SamplesPerPixel uint32     // offset  12
	CameraPosition  [3]float32 // offset  16
	Gamma           float32    // offset  28
	CameraForward   [3]float32 // offset  32
	MaxBounces      uint32     // offset  44
	CameraRight     [3]float32 // offset  48
	NumSpheres      uint32     // offset  60
	CameraUp        [3]float32 // offset  64
	NumPlanes       uint32     // offset  76
	SunDirection    [3]float32 // offset  80
	SunIntensity    float32    // offset  92
	SunColour       [3]float32 // offset  96
	SunFocus        float32    // offset 108
	NumQuads        uint32     // offset 112
	HasSkybox       uint32     // offset 116
	SkyboxExposure  float32    // offset 120
	_pad            float32    // offset 124
}

// Size returns the size of the GPUFrameUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (u *GPUFrameUniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniforms into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (u *GPUFrameUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	le := binary.LittleEndian
	f := func(off int, v float32) { le.PutUint32(buf[off:], math.Float32bits(v)) }
	v3 := func(off int, v [3]float32) {
		f(off, v[0])
		f(off+4, v[1])
		f(off+8, v[2])
	}

	f(0, u.Resolution[0])
	f(4, u.Resolution[1])
	le.PutUint32(buf[8:], u.Frame)
	le.PutUint32(buf[12:], u.SamplesPerPixel)
	v3(16, u.CameraPosition)
	f(28, u.Gamma)
	v3(32, u.CameraForward)
	le.PutUint32(buf[44:], u.MaxBounces)
	v3(48, u.CameraRight)
	le.PutUint32(buf[60:], u.NumSpheres)
	v3(64, u.CameraUp)
	le.PutUint32(buf[76:], u.NumPlanes)
	v3(80, u.SunDirection)
	f(92, u.SunIntensity)
	v3(96, u.SunColour)
	f(108, u.SunFocus)
	le.PutUint32(buf[112:], u.NumQuads)
	le.PutUint32(buf[116:], u.HasSkybox)
	f(120, u.SkyboxExposure)
	return buf
}
