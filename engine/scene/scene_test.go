package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Brooklyn-Dev/ray-tracing/engine/entity"
	"github.com/Brooklyn-Dev/ray-tracing/engine/environment"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	if s.Name != DefaultName {
		t.Errorf("name = %q, want %q", s.Name, DefaultName)
	}
	if s.Tracing != (Tracing{Gamma: 2.2, MaxBounces: 2, SamplesPerPixel: 1}) {
		t.Errorf("tracing = %+v", s.Tracing)
	}
	env := s.Environment
	if env.SkyboxPath != "" || env.ExposureEV != 0 {
		t.Errorf("skybox defaults = %q, %v", env.SkyboxPath, env.ExposureEV)
	}
	if env.SunPitch != 50 || env.SunYaw != -30 {
		t.Errorf("sun angles = %v, %v, want 50, -30", env.SunPitch, env.SunYaw)
	}
	if env.SunColour != [3]float32{1, 1, 0.9} || env.SunIntensity != 200 || env.SunFocus != 500 {
		t.Errorf("sun = %+v", env)
	}
	if s.EntityCount() != 0 {
		t.Errorf("entity count = %d, want 0", s.EntityCount())
	}
}

func TestParseAppliesDefaultsForMissingKeys(t *testing.T) {
	s, err := Parse([]byte(`{
		"tracing": {"maxBounces": 6},
		"environment": {"skyboxPath": "sky.png"},
		"spheres": [{"position": [0, 1, 0]}]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != UnnamedSceneName {
		t.Errorf("name = %q, want %q", s.Name, UnnamedSceneName)
	}
	if s.Tracing.MaxBounces != 6 || s.Tracing.Gamma != DefaultGamma || s.Tracing.SamplesPerPixel != 1 {
		t.Errorf("tracing = %+v", s.Tracing)
	}
	if s.Environment.SkyboxPath != "sky.png" || s.Environment.SunIntensity != 200 || s.Environment.SunPitch != 50 {
		t.Errorf("environment = %+v", s.Environment)
	}
	if len(s.Spheres) != 1 || s.Spheres[0].Radius != 1 || s.Spheres[0].Material != entity.DefaultMaterial() {
		t.Errorf("spheres = %+v", s.Spheres)
	}
}

func TestParseReadsQuads(t *testing.T) {
	s, err := Parse([]byte(`{"quads": [{"position": [0, 4, 0], "width": 2, "height": 3, "normal": [0, -1, 0],
		"material": {"emissionColour": [1, 1, 1], "emissionStrength": 10}}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Quads) != 1 {
		t.Fatalf("quads = %d, want 1", len(s.Quads))
	}
	q := s.Quads[0]
	if q.Width != 2 || q.Height != 3 || q.Normal != [3]float32{0, -1, 0} || q.Material.EmissionStrength != 10 {
		t.Errorf("quad = %+v", q)
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	if _, err := Parse([]byte(`{"spheres": [`)); err == nil {
		t.Error("expected a syntax error")
	}
	_, err := Parse([]byte(`{"tracing": {"samplesPerPixel": 0}}`))
	if !errors.Is(err, ErrInvalidScene) {
		t.Errorf("err = %v, want ErrInvalidScene", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || s != nil {
		t.Errorf("Load of missing file = %v, %v", s, err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mat := entity.Material{
		Colour:              [3]float32{0.1, 0.2, 0.3},
		Smoothness:          0.75,
		EmissionColour:      [3]float32{1, 0.5, 0.25},
		EmissionStrength:    3,
		SpecularColour:      [3]float32{0.9, 0.9, 0.9},
		Flag:                entity.FlagCheckerboard,
		SpecularProbability: 0.3,
	}
	want := New(
		WithName("Round Trip"),
		WithTracing(Tracing{Gamma: 1.8, MaxBounces: 8, SamplesPerPixel: 4}),
		WithCamera(Camera{Position: [3]float32{1, 2, 3}, Pitch: -10, Yaw: 45}),
		WithEnvironment(Environment{
			SkyboxPath: "assets/sky.hdr.png", ExposureEV: -1.5,
			SunPitch: 12, SunYaw: 34, SunColour: [3]float32{1, 0.8, 0.6},
			SunIntensity: 150, SunFocus: 250,
		}),
		WithSpheres(entity.Sphere{Position: [3]float32{0, 1, 0}, Radius: 0.5, Material: mat}),
		WithPlanes(entity.Plane{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}, Material: mat}),
		WithQuads(entity.Quad{Position: [3]float32{0, 5, 0}, Width: 2, Normal: [3]float32{0, -1, 0}, Height: 2,
			Right: [3]float32{1, 0, 0}, Up: [3]float32{0, 0, 1}, Material: mat}),
	)

	path := filepath.Join(t.TempDir(), "scene.json")
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestDerivedValues(t *testing.T) {
	s := New()
	if got := s.SunDirection(); got != environment.SunDirection(50, -30) {
		t.Errorf("SunDirection = %v", got)
	}
	if math.Abs(float64(s.SunDirection().Len())-1) > 1e-5 {
		t.Error("sun direction is not normalized")
	}
	s.Environment.ExposureEV = 2
	if s.SkyboxExposure() != 4 {
		t.Errorf("SkyboxExposure = %v, want 4", s.SkyboxExposure())
	}
}

func TestSampleScenesParse(t *testing.T) {
	matches, _ := filepath.Glob("../../scenes/*.json")
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Parse(data); err != nil {
			t.Errorf("%s: %v", path, err)
		}
	}
}
