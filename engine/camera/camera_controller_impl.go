package camera

import (
	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxPitch float32 = 89
	maxYaw   float32 = 360
)

// cameraControllerImpl is a fly controller: arrow keys or WASD move along the
// view plane, space and control move along world up, dragging looks around.
type cameraControllerImpl struct {
	position mgl32.Vec3
	yaw      float32
	pitch    float32

	speed            float32
	mouseSensitivity float32

	held     map[uint32]bool
	dragging bool
	lastX    int32
	lastY    int32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a fly controller at (0, 1, 4) looking down -Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		position:         mgl32.Vec3{0, 1, 4},
		yaw:              -90,
		pitch:            0,
		speed:            5,
		mouseSensitivity: 0.3,
		held:             make(map[uint32]bool),
	}
	for _, option := range options {
		option(cc)
	}
	cc.Place(cc.position, cc.yaw, cc.pitch)
	return cc
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 { return cc.position }

func (cc *cameraControllerImpl) Yaw() float32 { return cc.yaw }

func (cc *cameraControllerImpl) Pitch() float32 { return cc.pitch }

func (cc *cameraControllerImpl) Speed() float32 { return cc.speed }

func (cc *cameraControllerImpl) MouseSensitivity() float32 { return cc.mouseSensitivity }

func (cc *cameraControllerImpl) Place(position mgl32.Vec3, yaw, pitch float32) {
	cc.position = position
	cc.setAngles(yaw, pitch)
}

func (cc *cameraControllerImpl) setAngles(yaw, pitch float32) {
	if yaw > maxYaw {
		yaw -= maxYaw
	}
	if yaw < -maxYaw {
		yaw += maxYaw
	}
	cc.yaw = yaw
	cc.pitch = common.Clamp(pitch, -maxPitch, maxPitch)
}

func (cc *cameraControllerImpl) KeyDown(keyCode uint32) {
	cc.held[keyCode] = true
}

func (cc *cameraControllerImpl) KeyUp(keyCode uint32) {
	delete(cc.held, keyCode)
}

func (cc *cameraControllerImpl) BeginDrag(x, y int32) {
	cc.dragging = true
	cc.lastX, cc.lastY = x, y
}

func (cc *cameraControllerImpl) EndDrag() {
	cc.dragging = false
}

func (cc *cameraControllerImpl) MouseMove(x, y int32) {
	if !cc.dragging {
		return
	}
	dx, dy := x-cc.lastX, y-cc.lastY
	if dx == 0 && dy == 0 {
		return
	}
	cc.lastX, cc.lastY = x, y
	cc.setAngles(cc.yaw+float32(dx)*cc.mouseSensitivity, cc.pitch-float32(dy)*cc.mouseSensitivity)
}

func (cc *cameraControllerImpl) Advance(deltaTime float32, forward, right mgl32.Vec3) {
	var move mgl32.Vec3
	if cc.anyHeld(common.KeyUp, common.KeyW) {
		move = move.Add(forward)
	}
	if cc.anyHeld(common.KeyDown, common.KeyS) {
		move = move.Sub(forward)
	}
	if cc.anyHeld(common.KeyRight, common.KeyD) {
		move = move.Add(right)
	}
	if cc.anyHeld(common.KeyLeft, common.KeyA) {
		move = move.Sub(right)
	}
	if cc.anyHeld(common.KeySpace) {
		move = move.Add(WorldUp)
	}
	if cc.anyHeld(common.KeyLeftControl, common.KeyRightControl) {
		move = move.Sub(WorldUp)
	}
	if move == (mgl32.Vec3{}) || deltaTime <= 0 {
		return
	}
	cc.position = cc.position.Add(move.Mul(cc.speed * deltaTime))
}

func (cc *cameraControllerImpl) anyHeld(keys ...uint32) bool {
	for _, k := range keys {
		if cc.held[k] {
			return true
		}
	}
	return false
}
