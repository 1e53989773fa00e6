package renderer

import "github.com/Brooklyn-Dev/ray-tracing/engine/camera"

// accumulator owns the frame counter and the pose the last accumulated frame was taken from.
// It is the only writer of frame.
type accumulator struct {
	frame     uint32
	lastPose  camera.Pose
	hasPose   bool
	tolerance float32
}

func newAccumulator(tolerance float32) *accumulator {
	return &accumulator{frame: 1, tolerance: tolerance}
}

// poseChanged reports whether pose differs from the one observed at the end of the
// previous accumulated frame. Nothing has been observed before the first frame.
func (a *accumulator) poseChanged(pose camera.Pose) bool {
	if !a.hasPose {
		return true
	}
	if a.tolerance > 0 {
		return !a.lastPose.ApproxEqual(pose, a.tolerance)
	}
	return !a.lastPose.Equal(pose)
}

func (a *accumulator) rearm() {
	a.frame = 1
}

// advance records a completed pass.
func (a *accumulator) advance(pose camera.Pose) {
	a.lastPose = pose
	a.hasPose = true
	a.frame++
}
