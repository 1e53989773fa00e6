package environment

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Defaults applied when no scene overrides them.
const (
	DefaultSunPitch     float32 = 50
	DefaultSunYaw       float32 = -30
	DefaultSunIntensity float32 = 200
	DefaultSunFocus     float32 = 500
)

// DefaultSunColour is a slightly warm white.
var DefaultSunColour = mgl32.Vec3{1, 1, 0.9}

// Environment holds the sun and skybox lighting state consumed by the kernel.
// Every setter reports whether the stored value actually changed so callers can
// discard accumulated samples only when lighting really moved.
// The sun direction is never stored; it is derived from pitch and yaw on demand.
type Environment struct {
	skyboxPath string
	hasSkybox  bool
	exposureEV float32

	sunPitch     float32
	sunYaw       float32
	sunColour    mgl32.Vec3
	sunIntensity float32
	sunFocus     float32
}

// New creates an Environment with no skybox and the default sun.
//
// Returns:
//   - *Environment: the newly created environment
func New() *Environment {
	return &Environment{
		sunPitch:     DefaultSunPitch,
		sunYaw:       DefaultSunYaw,
		sunColour:    DefaultSunColour,
		sunIntensity: DefaultSunIntensity,
		sunFocus:     DefaultSunFocus,
	}
}

// SunDirection converts sun angles in degrees to a unit direction pointing towards the sun.
//
// Parameters:
//   - pitchDeg: elevation above the horizon in degrees
//   - yawDeg: rotation about the vertical axis in degrees
//
// Returns:
//   - mgl32.Vec3: the normalized direction
func SunDirection(pitchDeg, yawDeg float32) mgl32.Vec3 {
	p := float64(mgl32.DegToRad(pitchDeg))
	y := float64(mgl32.DegToRad(yawDeg))
	return mgl32.Vec3{
		float32(math.Cos(p) * math.Sin(y)),
		float32(math.Sin(p)),
		float32(math.Cos(p) * math.Cos(y)),
	}.Normalize()
}

// ExposureMultiplier converts an exposure in EV stops to a linear multiplier (2^EV).
func ExposureMultiplier(ev float32) float32 {
	return float32(math.Exp2(float64(ev)))
}

func (e *Environment) SkyboxPath() string { return e.skyboxPath }

// HasSkybox reports whether a skybox image is currently bound.
func (e *Environment) HasSkybox() bool { return e.hasSkybox }

// SetSkybox records a successfully loaded skybox.
//
// Returns:
//   - bool: true if the bound skybox changed
func (e *Environment) SetSkybox(path string) bool {
	if e.hasSkybox && e.skyboxPath == path {
		return false
	}
	e.skyboxPath = path
	e.hasSkybox = true
	return true
}

// ClearSkybox drops the skybox.
//
// Returns:
//   - bool: true if a skybox was bound
func (e *Environment) ClearSkybox() bool {
	had := e.hasSkybox
	e.skyboxPath = ""
	e.hasSkybox = false
	return had
}

func (e *Environment) ExposureEV() float32 { return e.exposureEV }

// SkyboxExposure returns the linear skybox multiplier derived from the EV setting.
func (e *Environment) SkyboxExposure() float32 {
	return ExposureMultiplier(e.exposureEV)
}

// SetExposureEV sets the skybox exposure in EV stops.
//
// Returns:
//   - bool: true if the value changed
func (e *Environment) SetExposureEV(ev float32) bool {
	if e.exposureEV == ev {
		return false
	}
	e.exposureEV = ev
	return true
}

func (e *Environment) SunPitch() float32 { return e.sunPitch }

func (e *Environment) SunYaw() float32 { return e.sunYaw }

// SunDirection returns the direction derived from the current sun angles.
func (e *Environment) SunDirection() mgl32.Vec3 {
	return SunDirection(e.sunPitch, e.sunYaw)
}

// SetSunAngles sets the sun pitch and yaw in degrees.
//
// Returns:
//   - bool: true if either angle changed
func (e *Environment) SetSunAngles(pitch, yaw float32) bool {
	if e.sunPitch == pitch && e.sunYaw == yaw {
		return false
	}
	e.sunPitch, e.sunYaw = pitch, yaw
	return true
}

func (e *Environment) SunColour() mgl32.Vec3 { return e.sunColour }

// SetSunColour sets the linear sun colour.
//
// Returns:
//   - bool: true if the value changed
func (e *Environment) SetSunColour(c mgl32.Vec3) bool {
	if e.sunColour == c {
		return false
	}
	e.sunColour = c
	return true
}

func (e *Environment) SunIntensity() float32 { return e.sunIntensity }

// SetSunIntensity sets the sun radiance scale.
//
// Returns:
//   - bool: true if the value changed
func (e *Environment) SetSunIntensity(v float32) bool {
	if e.sunIntensity == v {
		return false
	}
	e.sunIntensity = v
	return true
}

func (e *Environment) SunFocus() float32 { return e.sunFocus }

// SetSunFocus sets the sun angular focus. Higher values give a smaller, harder sun disc.
//
// Returns:
//   - bool: true if the value changed
func (e *Environment) SetSunFocus(v float32) bool {
	if e.sunFocus == v {
		return false
	}
	e.sunFocus = v
	return true
}
