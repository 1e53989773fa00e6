package entity

import (
	"slices"

	"github.com/Brooklyn-Dev/ray-tracing/common"
)

// Kind identifies an entity array. Its value is the kernel binding slot the array is uploaded to.
type Kind int

const (
	// KindSphere is bound at slot 0.
	KindSphere Kind = iota
	// KindPlane is bound at slot 1.
	KindPlane
	// KindQuad is bound at slot 2.
	KindQuad
)

// Kinds lists every entity kind in slot order.
var Kinds = [...]Kind{KindSphere, KindPlane, KindQuad}

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "spheres"
	case KindPlane:
		return "planes"
	case KindQuad:
		return "quads"
	default:
		return "unknown"
	}
}

// RecordSize returns the GPU record size in bytes for the kind.
//
// Returns:
//   - int: bytes per record, or 0 for an unknown kind
func (k Kind) RecordSize() int {
	switch k {
	case KindSphere:
		return (&Sphere{}).Size()
	case KindPlane:
		return (&Plane{}).Size()
	case KindQuad:
		return (&Quad{}).Size()
	default:
		return 0
	}
}

// Store owns the CPU-side copies of every primitive array.
// Contents are always copied in, so callers may reuse or mutate their slices afterwards.
// Geometry is not validated.
type Store struct {
	spheres []Sphere
	planes  []Plane
	quads   []Quad
}

// NewStore creates an empty Store.
//
// Returns:
//   - *Store: the newly created store
func NewStore() *Store {
	return &Store{}
}

// Load replaces every array wholesale.
//
// Parameters:
//   - spheres: the spheres to copy in
//   - planes: the planes to copy in
//   - quads: the quads to copy in
func (s *Store) Load(spheres []Sphere, planes []Plane, quads []Quad) {
	s.SetSpheres(spheres)
	s.SetPlanes(planes)
	s.SetQuads(quads)
}

// SetSpheres replaces the sphere array with a copy of spheres.
func (s *Store) SetSpheres(spheres []Sphere) {
	s.spheres = slices.Clone(spheres)
}

// SetPlanes replaces the plane array with a copy of planes.
func (s *Store) SetPlanes(planes []Plane) {
	s.planes = slices.Clone(planes)
}

// SetQuads replaces the quad array with a copy of quads.
func (s *Store) SetQuads(quads []Quad) {
	s.quads = slices.Clone(quads)
}

// Spheres returns a copy of the stored spheres.
func (s *Store) Spheres() []Sphere {
	return slices.Clone(s.spheres)
}

// Planes returns a copy of the stored planes.
func (s *Store) Planes() []Plane {
	return slices.Clone(s.planes)
}

// Quads returns a copy of the stored quads.
func (s *Store) Quads() []Quad {
	return slices.Clone(s.quads)
}

// Count returns the number of records held for kind.
//
// Parameters:
//   - kind: the entity kind
//
// Returns:
//   - int: the record count
func (s *Store) Count(kind Kind) int {
	switch kind {
	case KindSphere:
		return len(s.spheres)
	case KindPlane:
		return len(s.planes)
	case KindQuad:
		return len(s.quads)
	default:
		return 0
	}
}

// Bytes returns a byte view of the records held for kind, laid out exactly as the kernel reads them.
// The view aliases the store and is only valid until the next Set or Load call.
//
// Parameters:
//   - kind: the entity kind
//
// Returns:
//   - []byte: the record bytes, or nil when the array is empty
func (s *Store) Bytes(kind Kind) []byte {
	switch kind {
	case KindSphere:
		return common.SliceToBytes(s.spheres)
	case KindPlane:
		return common.SliceToBytes(s.planes)
	case KindQuad:
		return common.SliceToBytes(s.quads)
	default:
		return nil
	}
}
