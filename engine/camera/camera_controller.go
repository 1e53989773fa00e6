package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the camera placement (position, yaw, pitch) and turns
// window input into motion. Camera reads from the controller and derives the basis.
//
// Input methods only record state; motion is applied in Advance so that a frame
// sees a single consistent placement.
type CameraController interface {
	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// Yaw returns the heading in degrees, wrapped to [-360, 360].
	Yaw() float32

	// Pitch returns the elevation in degrees, clamped to [-89, 89].
	Pitch() float32

	// Place moves the camera to an absolute placement, clamping pitch and wrapping yaw.
	//
	// Parameters:
	//   - position: world-space position
	//   - yaw: heading in degrees
	//   - pitch: elevation in degrees
	Place(position mgl32.Vec3, yaw, pitch float32)

	// KeyDown records a held key.
	//
	// Parameters:
	//   - keyCode: a common.Key* code
	KeyDown(keyCode uint32)

	// KeyUp releases a held key.
	//
	// Parameters:
	//   - keyCode: a common.Key* code
	KeyUp(keyCode uint32)

	// BeginDrag starts a mouse look drag at the given cursor position.
	BeginDrag(x, y int32)

	// EndDrag stops the current mouse look drag.
	EndDrag()

	// MouseMove turns the camera by the cursor delta while a drag is active.
	MouseMove(x, y int32)

	// Advance applies held-key movement for deltaTime seconds along the given axes.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous advance
	//   - forward: the camera's current forward axis
	//   - right: the camera's current right axis
	Advance(deltaTime float32, forward, right mgl32.Vec3)

	// Speed returns the movement speed in world units per second.
	Speed() float32

	// MouseSensitivity returns the look sensitivity in degrees per pixel.
	MouseSensitivity() float32
}
