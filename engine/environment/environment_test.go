package environment

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/x448/float16"
)

func TestSunDirectionIsUnitAndDerived(t *testing.T) {
	tests := []struct {
		pitch, yaw float32
		want       mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{0, 0, 1}},
		{90, 0, mgl32.Vec3{0, 1, 0}},
		{0, 90, mgl32.Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.pitch, tt.yaw)
		if got.Sub(tt.want).Len() > 1e-5 {
			t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.pitch, tt.yaw, got, tt.want)
		}
	}

	e := New()
	d := e.SunDirection()
	if math.Abs(float64(d.Len())-1) > 1e-5 {
		t.Errorf("default sun direction length = %v", d.Len())
	}
	e.SetSunAngles(10, 20)
	if e.SunDirection() != SunDirection(10, 20) {
		t.Error("direction did not follow the angles")
	}
}

func TestExposureMultiplier(t *testing.T) {
	for ev, want := range map[float32]float32{0: 1, 1: 2, -2: 0.25, 3: 8} {
		if got := ExposureMultiplier(ev); got != want {
			t.Errorf("ExposureMultiplier(%v) = %v, want %v", ev, got, want)
		}
	}
}

func TestSettersReportChange(t *testing.T) {
	e := New()
	if e.SetExposureEV(0) {
		t.Error("setting the current exposure reported a change")
	}
	if !e.SetExposureEV(1.5) {
		t.Error("new exposure not reported as a change")
	}
	if e.SetSunAngles(DefaultSunPitch, DefaultSunYaw) {
		t.Error("setting the current angles reported a change")
	}
	if !e.SetSunAngles(DefaultSunPitch, 0) {
		t.Error("new yaw not reported as a change")
	}
	if e.SetSunColour(DefaultSunColour) || !e.SetSunColour(mgl32.Vec3{1, 0, 0}) {
		t.Error("sun colour change detection is wrong")
	}
	if e.SetSunIntensity(DefaultSunIntensity) || !e.SetSunIntensity(10) {
		t.Error("sun intensity change detection is wrong")
	}
	if e.SetSunFocus(DefaultSunFocus) || !e.SetSunFocus(50) {
		t.Error("sun focus change detection is wrong")
	}
}

func TestSkyboxStateTransitions(t *testing.T) {
	e := New()
	if e.ClearSkybox() {
		t.Error("clearing an empty skybox reported a change")
	}
	if !e.SetSkybox("a.png") || !e.HasSkybox() {
		t.Fatal("loading a skybox was not recorded")
	}
	if e.SetSkybox("a.png") {
		t.Error("reloading the same skybox reported a change")
	}
	if !e.SetSkybox("b.png") {
		t.Error("replacing the skybox was not reported")
	}
	if !e.ClearSkybox() || e.HasSkybox() || e.SkyboxPath() != "" {
		t.Error("clearing did not release the skybox")
	}
}

func writePNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "sky.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSkyboxProducesLinearHalfFloats(t *testing.T) {
	path := writePNG(t, 4, 2, color.NRGBA{R: 255, G: 0, B: 255, A: 255})

	staged, err := LoadSkybox(path, 0, nil)
	if err != nil {
		t.Fatalf("LoadSkybox: %v", err)
	}
	if staged.Width != 4 || staged.Height != 2 {
		t.Fatalf("size = %dx%d, want 4x2", staged.Width, staged.Height)
	}
	if len(staged.Pixels) != 4*2*8 || staged.RowPitch() != 32 {
		t.Fatalf("unexpected staging layout: %d bytes, pitch %d", len(staged.Pixels), staged.RowPitch())
	}
	r := float16.Frombits(binary.LittleEndian.Uint16(staged.Pixels[0:])).Float32()
	g := float16.Frombits(binary.LittleEndian.Uint16(staged.Pixels[2:])).Float32()
	if r != 1 || g != 0 {
		t.Errorf("first texel = (%v, %v), want (1, 0)", r, g)
	}
}

func TestLoadSkyboxDownscales(t *testing.T) {
	path := writePNG(t, 200, 100, color.Gray{Y: 128})
	staged, err := LoadSkybox(path, 64, common.NewRowWorker(2))
	if err != nil {
		t.Fatalf("LoadSkybox: %v", err)
	}
	if staged.Width != 64 || staged.Height != 32 {
		t.Errorf("size = %dx%d, want 64x32", staged.Width, staged.Height)
	}
}

func TestLoadSkyboxErrors(t *testing.T) {
	if _, err := LoadSkybox(filepath.Join(t.TempDir(), "missing.png"), 0, nil); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkybox(path, 0, nil); err == nil {
		t.Error("expected a decode error")
	}

	if _, err := StageSkybox(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 0, nil); err != ErrEmptyImage {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}
