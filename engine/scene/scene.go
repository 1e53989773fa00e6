package scene

import (
	"github.com/Brooklyn-Dev/ray-tracing/engine/entity"
	"github.com/Brooklyn-Dev/ray-tracing/engine/environment"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene defaults.
const (
	DefaultName            = "Default Scene"
	UnnamedSceneName       = "Unknown Scene"
	DefaultGamma           = float32(2.2)
	DefaultMaxBounces      = 2
	DefaultSamplesPerPixel = 1
)

// Tracing holds the global tracing parameters.
type Tracing struct {
	Gamma           float32 `json:"gamma"`
	MaxBounces      int     `json:"maxBounces"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
}

// Camera is the initial camera placement. Angles are in degrees.
type Camera struct {
	Position [3]float32 `json:"position"`
	Pitch    float32    `json:"pitch"`
	Yaw      float32    `json:"yaw"`
}

// Environment holds the lighting parameters of a scene.
type Environment struct {
	SkyboxPath   string     `json:"skyboxPath"`
	ExposureEV   float32    `json:"exposureEV"`
	SunPitch     float32    `json:"sunPitch"`
	SunYaw       float32    `json:"sunYaw"`
	SunColour    [3]float32 `json:"sunColour"`
	SunIntensity float32    `json:"sunIntensity"`
	SunFocus     float32    `json:"sunFocus"`
}

// Scene is a named aggregate of primitives, a camera placement and the
// tracing and environment parameters to render them with.
type Scene struct {
	Name        string          `json:"name"`
	Tracing     Tracing         `json:"tracing"`
	Camera      Camera          `json:"camera"`
	Environment Environment     `json:"environment"`
	Spheres     []entity.Sphere `json:"spheres"`
	Planes      []entity.Plane  `json:"planes"`
	Quads       []entity.Quad   `json:"quads"`
}

// DefaultCamera returns the camera placement used when a scene omits one.
func DefaultCamera() Camera {
	return Camera{Position: [3]float32{0, 1, 4}, Pitch: 0, Yaw: -90}
}

// DefaultEnvironment returns the environment used when a scene omits one.
func DefaultEnvironment() Environment {
	return Environment{
		SunPitch:     environment.DefaultSunPitch,
		SunYaw:       environment.DefaultSunYaw,
		SunColour:    environment.DefaultSunColour,
		SunIntensity: environment.DefaultSunIntensity,
		SunFocus:     environment.DefaultSunFocus,
	}
}

// New creates an empty scene with default parameters.
//
// Parameters:
//   - options: functional options applied after defaults
//
// Returns:
//   - *Scene: the newly created scene
func New(options ...SceneBuilderOption) *Scene {
	s := &Scene{
		Name: DefaultName,
		Tracing: Tracing{
			Gamma:           DefaultGamma,
			MaxBounces:      DefaultMaxBounces,
			SamplesPerPixel: DefaultSamplesPerPixel,
		},
		Camera:      DefaultCamera(),
		Environment: DefaultEnvironment(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SunDirection returns the unit direction towards the sun, derived from the stored angles.
func (s *Scene) SunDirection() mgl32.Vec3 {
	return environment.SunDirection(s.Environment.SunPitch, s.Environment.SunYaw)
}

// SkyboxExposure returns the linear skybox multiplier, 2^ExposureEV.
func (s *Scene) SkyboxExposure() float32 {
	return environment.ExposureMultiplier(s.Environment.ExposureEV)
}

// EntityCount returns the total number of primitives in the scene.
func (s *Scene) EntityCount() int {
	return len(s.Spheres) + len(s.Planes) + len(s.Quads)
}
