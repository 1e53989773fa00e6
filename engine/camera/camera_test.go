package camera

import (
	"math"
	"testing"

	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestBasisIsOrthonormal(t *testing.T) {
	for _, a := range []struct{ yaw, pitch float32 }{{-90, 0}, {0, 45}, {123, -60}, {-359, 89}} {
		f, r, u := Basis(a.yaw, a.pitch)
		for name, v := range map[string]mgl32.Vec3{"forward": f, "right": r, "up": u} {
			if math.Abs(float64(v.Len())-1) > 1e-5 {
				t.Errorf("yaw=%v pitch=%v: %s length %v", a.yaw, a.pitch, name, v.Len())
			}
		}
		if math.Abs(float64(f.Dot(r))) > 1e-5 || math.Abs(float64(f.Dot(u))) > 1e-5 || math.Abs(float64(r.Dot(u))) > 1e-5 {
			t.Errorf("yaw=%v pitch=%v: basis not orthogonal", a.yaw, a.pitch)
		}
	}

	f, _, _ := Basis(-90, 0)
	if f.Sub(mgl32.Vec3{0, 0, -1}).Len() > 1e-6 {
		t.Errorf("default forward = %v, want -Z", f)
	}
}

func TestStationaryCameraPoseIsBitStable(t *testing.T) {
	c := NewCamera()
	first := c.Pose()
	for range 100 {
		if c.Update(1.0 / 60) {
			t.Fatal("stationary camera reported movement")
		}
	}
	if !c.Pose().Equal(first) {
		t.Error("pose drifted without input")
	}
}

func TestKeyboardMovesAlongForward(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithPosition(0, 0, 0), WithSpeed(2))))
	c.Controller().KeyDown(common.KeyUp)
	if !c.Update(0.5) {
		t.Fatal("movement not reported")
	}
	want := mgl32.Vec3{0, 0, -1}
	if c.Pose().Position.Sub(want).Len() > 1e-5 {
		t.Errorf("position = %v, want %v", c.Pose().Position, want)
	}

	c.Controller().KeyUp(common.KeyUp)
	before := c.Pose()
	c.Update(0.5)
	if !c.Pose().Equal(before) {
		t.Error("camera moved after key release")
	}
}

func TestDragLooksAndClampsPitch(t *testing.T) {
	ctrl := NewCameraController(WithMouseSensitivity(1))
	c := NewCamera(WithController(ctrl))

	ctrl.MouseMove(50, 50)
	if ctrl.Yaw() != -90 {
		t.Error("mouse move without drag changed yaw")
	}

	ctrl.BeginDrag(0, 0)
	ctrl.MouseMove(10, -500)
	if ctrl.Yaw() != -80 {
		t.Errorf("yaw = %v, want -80", ctrl.Yaw())
	}
	if ctrl.Pitch() != 89 {
		t.Errorf("pitch = %v, want clamped to 89", ctrl.Pitch())
	}
	ctrl.EndDrag()

	before := c.Pose()
	if !c.Update(0) {
		t.Error("look change not reported")
	}
	if c.Pose().Forward == before.Forward {
		t.Error("basis was not rebuilt after yaw/pitch change")
	}
}

func TestPlaceWrapsYaw(t *testing.T) {
	ctrl := NewCameraController()
	ctrl.Place(mgl32.Vec3{1, 2, 3}, 370, -100)
	if ctrl.Yaw() != 10 || ctrl.Pitch() != -89 {
		t.Errorf("placement = yaw %v pitch %v, want 10, -89", ctrl.Yaw(), ctrl.Pitch())
	}
}

func TestPoseApproxEqual(t *testing.T) {
	p := NewCamera().Pose()
	q := p
	q.Position[0] += 1e-7
	if p.Equal(q) {
		t.Error("Equal ignored a tiny difference")
	}
	if !p.ApproxEqual(q, 1e-4) {
		t.Error("ApproxEqual rejected a difference within tolerance")
	}
}

func TestPoseApproxEqualIsAbsolute(t *testing.T) {
	p := Pose{Forward: mgl32.Vec3{0, 0, -1}}
	q := p
	q.Forward[0] = 1e-5
	if !p.ApproxEqual(q, 1e-3) {
		t.Error("jitter around zero exceeded an absolute tolerance")
	}
	q.Forward[0] = 0.01
	if p.ApproxEqual(q, 1e-3) {
		t.Error("ApproxEqual accepted a difference above tolerance")
	}
}
