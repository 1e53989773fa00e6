package entity

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Material surface flags.
const (
	// FlagCheckerboard makes the kernel alternate the diffuse colour in a world-space checker pattern.
	FlagCheckerboard int32 = 1 << 0
)

// Material is the GPU-aligned surface description shared by every primitive.
// Matches the WGSL Material struct layout exactly.
// Size: 64 bytes (WGSL storage layout, 16-byte aligned).
type Material struct {
	Colour              [3]float32 `json:"colour"`              // offset  0: diffuse albedo
	Smoothness          float32    `json:"smoothness"`          // offset 12: 0 = diffuse, 1 = mirror
	EmissionColour      [3]float32 `json:"emissionColour"`      // offset 16
	EmissionStrength    float32    `json:"emissionStrength"`    // offset 28
	SpecularColour      [3]float32 `json:"specularColour"`      // offset 32
	Flag                int32      `json:"flag"`                // offset 44: bitmask of Flag* values
	SpecularProbability float32    `json:"specularProbability"` // offset 48
	_pad0               float32    // offset 52
	_pad1               float32    // offset 56
	_pad2               float32    // offset 60
}

// Size returns the size of the Material struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (m *Material) Size() int {
	return int(unsafe.Sizeof(*m))
}

// Marshal serializes the Material into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (m *Material) Marshal() []byte {
	buf := make([]byte, m.Size())
	m.marshalInto(buf)
	return buf
}

func (m *Material) marshalInto(buf []byte) {
	putVec3(buf[0:], m.Colour)
	putFloat(buf[12:], m.Smoothness)
	putVec3(buf[16:], m.EmissionColour)
	putFloat(buf[28:], m.EmissionStrength)
	putVec3(buf[32:], m.SpecularColour)
	binary.LittleEndian.PutUint32(buf[44:], uint32(m.Flag))
	putFloat(buf[48:], m.SpecularProbability)
	// 52..64 padding stays zero
}

// Sphere is the GPU-aligned sphere record bound at slot 0.
// Size: 80 bytes.
type Sphere struct {
	Position [3]float32 `json:"position"` // offset  0
	Radius   float32    `json:"radius"`   // offset 12
	Material Material   `json:"material"` // offset 16
}

// Size returns the size of the Sphere struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (s *Sphere) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the Sphere into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (s *Sphere) Marshal() []byte {
	buf := make([]byte, s.Size())
	putVec3(buf[0:], s.Position)
	putFloat(buf[12:], s.Radius)
	s.Material.marshalInto(buf[16:])
	return buf
}

// Plane is the GPU-aligned infinite plane record bound at slot 1.
// Normal should be unit length; it is uploaded as given.
// Size: 96 bytes.
type Plane struct {
	Position [3]float32 `json:"position"` // offset  0
	_pad0    float32    // offset 12
	Normal   [3]float32 `json:"normal"`   // offset 16
	_pad1    float32    // offset 28
	Material Material   `json:"material"` // offset 32
}

// Size returns the size of the Plane struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (p *Plane) Size() int {
	return int(unsafe.Sizeof(*p))
}

// Marshal serializes the Plane into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (p *Plane) Marshal() []byte {
	buf := make([]byte, p.Size())
	putVec3(buf[0:], p.Position)
	putVec3(buf[16:], p.Normal)
	p.Material.marshalInto(buf[32:])
	return buf
}

// Quad is the GPU-aligned finite rectangle record bound at slot 2.
// Right and Up span the rectangle in its local tangent space, scaled by Width and Height.
// Size: 128 bytes.
type Quad struct {
	Position [3]float32 `json:"position"` // offset   0: centre
	Width    float32    `json:"width"`    // offset  12
	Normal   [3]float32 `json:"normal"`   // offset  16
	Height   float32    `json:"height"`   // offset  28
	Right    [3]float32 `json:"right"`    // offset  32
	_pad0    float32    // offset  44
	Up       [3]float32 `json:"up"`       // offset  48
	_pad1    float32    // offset  60
	Material Material   `json:"material"` // offset  64
}

// Size returns the size of the Quad struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (q *Quad) Size() int {
	return int(unsafe.Sizeof(*q))
}

// Marshal serializes the Quad into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (q *Quad) Marshal() []byte {
	buf := make([]byte, q.Size())
	putVec3(buf[0:], q.Position)
	putFloat(buf[12:], q.Width)
	putVec3(buf[16:], q.Normal)
	putFloat(buf[28:], q.Height)
	putVec3(buf[32:], q.Right)
	putVec3(buf[48:], q.Up)
	q.Material.marshalInto(buf[64:])
	return buf
}

func putFloat(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func putVec3(buf []byte, v [3]float32) {
	for i := range 3 {
		putFloat(buf[i*4:], v[i])
	}
}
