package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed up axis used to build the camera basis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Pose is a read-only snapshot of the camera consumed by the renderer:
// a world-space position plus an orthonormal forward/right/up basis.
type Pose struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
}

// Equal reports whether every component of both poses is bit-identical.
func (p Pose) Equal(o Pose) bool {
	return p == o
}

// ApproxEqual reports whether every component of both poses differs by at most eps.
func (p Pose) ApproxEqual(o Pose, eps float32) bool {
	return within(p.Position, o.Position, eps) &&
		within(p.Forward, o.Forward, eps) &&
		within(p.Right, o.Right, eps) &&
		within(p.Up, o.Up, eps)
}

func within(a, b mgl32.Vec3, eps float32) bool {
	d := a.Sub(b)
	return mgl32.Abs(d[0]) <= eps && mgl32.Abs(d[1]) <= eps && mgl32.Abs(d[2]) <= eps
}

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	controller CameraController

	position mgl32.Vec3
	forward  mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3

	// basisYaw and basisPitch are the angles the cached basis was built from.
	basisYaw   float32
	basisPitch float32
	basisValid bool
}

// Camera is a first-person camera driven by a CameraController.
//
// The basis is rebuilt only when the controller's yaw or pitch change, so a
// stationary camera produces bit-identical poses frame after frame.
type Camera interface {
	// Update advances the controller by deltaTime and refreshes the pose.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous update
	//
	// Returns:
	//   - bool: true if the pose changed
	Update(deltaTime float32) bool

	// Pose returns the current pose.
	//
	// Returns:
	//   - Pose: position and orthonormal basis
	Pose() Pose

	// Controller returns the controller owning the camera's placement.
	//
	// Returns:
	//   - CameraController: the controller
	Controller() CameraController

	// SetController replaces the controller and refreshes the pose from it.
	//
	// Parameters:
	//   - ctrl: the new controller
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera. Without WithController a fly controller with default settings is used.
//
// Parameters:
//   - options: functional options for camera configuration
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{}
	for _, opt := range options {
		opt(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	c.sync()
	return c
}

func (c *cameraImpl) Update(deltaTime float32) bool {
	before := c.Pose()
	c.controller.Advance(deltaTime, c.forward, c.right)
	c.sync()
	return !before.Equal(c.Pose())
}

func (c *cameraImpl) Pose() Pose {
	return Pose{Position: c.position, Forward: c.forward, Right: c.right, Up: c.up}
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.controller = ctrl
	c.basisValid = false
	c.sync()
}

// sync copies the controller placement and rebuilds the basis if the angles moved.
func (c *cameraImpl) sync() {
	c.position = c.controller.Position()
	yaw, pitch := c.controller.Yaw(), c.controller.Pitch()
	if c.basisValid && yaw == c.basisYaw && pitch == c.basisPitch {
		return
	}
	c.forward, c.right, c.up = Basis(yaw, pitch)
	c.basisYaw, c.basisPitch = yaw, pitch
	c.basisValid = true
}

// Basis builds an orthonormal forward/right/up basis from yaw and pitch in degrees.
// Yaw -90 with pitch 0 looks down -Z.
//
// Parameters:
//   - yaw: heading in degrees
//   - pitch: elevation in degrees
//
// Returns:
//   - forward, right, up: unit vectors
func Basis(yaw, pitch float32) (forward, right, up mgl32.Vec3) {
	y := float64(mgl32.DegToRad(yaw))
	p := float64(mgl32.DegToRad(pitch))
	forward = mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
	right = forward.Cross(WorldUp).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}
