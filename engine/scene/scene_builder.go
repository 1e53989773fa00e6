package scene

import "github.com/Brooklyn-Dev/ray-tracing/engine/entity"

// SceneBuilderOption is a functional option applied to a Scene during construction via New.
type SceneBuilderOption func(*Scene)

// WithName sets the scene name.
func WithName(name string) SceneBuilderOption {
	return func(s *Scene) {
		s.Name = name
	}
}

// WithTracing sets the tracing parameters.
func WithTracing(t Tracing) SceneBuilderOption {
	return func(s *Scene) {
		s.Tracing = t
	}
}

// WithCamera sets the initial camera placement.
func WithCamera(c Camera) SceneBuilderOption {
	return func(s *Scene) {
		s.Camera = c
	}
}

// WithEnvironment sets the environment parameters.
func WithEnvironment(e Environment) SceneBuilderOption {
	return func(s *Scene) {
		s.Environment = e
	}
}

// WithSpheres appends spheres to the scene.
func WithSpheres(spheres ...entity.Sphere) SceneBuilderOption {
	return func(s *Scene) {
		s.Spheres = append(s.Spheres, spheres...)
	}
}

// WithPlanes appends planes to the scene.
func WithPlanes(planes ...entity.Plane) SceneBuilderOption {
	return func(s *Scene) {
		s.Planes = append(s.Planes, planes...)
	}
}

// WithQuads appends quads to the scene.
func WithQuads(quads ...entity.Quad) SceneBuilderOption {
	return func(s *Scene) {
		s.Quads = append(s.Quads, quads...)
	}
}
