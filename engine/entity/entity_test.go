package entity

import (
	"bytes"
	"encoding/json"
	"testing"
	"unsafe"

	"github.com/Brooklyn-Dev/ray-tracing/common"
)

func TestRecordSizes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"Material", (&Material{}).Size(), 64},
		{"Sphere", (&Sphere{}).Size(), 80},
		{"Plane", (&Plane{}).Size(), 96},
		{"Quad", (&Quad{}).Size(), 128},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s size = %d, want %d", tt.name, tt.got, tt.want)
		}
		if tt.got%16 != 0 {
			t.Errorf("%s size %d is not a multiple of 16", tt.name, tt.got)
		}
	}
}

func TestFieldOffsets(t *testing.T) {
	var m Material
	var q Quad
	var p Plane
	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"Material.EmissionColour", unsafe.Offsetof(m.EmissionColour), 16},
		{"Material.SpecularColour", unsafe.Offsetof(m.SpecularColour), 32},
		{"Material.Flag", unsafe.Offsetof(m.Flag), 44},
		{"Material.SpecularProbability", unsafe.Offsetof(m.SpecularProbability), 48},
		{"Plane.Normal", unsafe.Offsetof(p.Normal), 16},
		{"Plane.Material", unsafe.Offsetof(p.Material), 32},
		{"Quad.Right", unsafe.Offsetof(q.Right), 32},
		{"Quad.Up", unsafe.Offsetof(q.Up), 48},
		{"Quad.Material", unsafe.Offsetof(q.Material), 64},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("%s offset = %d, want %d", o.name, o.got, o.want)
		}
	}
}

func TestMarshalMatchesMemoryView(t *testing.T) {
	s := Sphere{
		Position: [3]float32{1, 2, 3},
		Radius:   0.5,
		Material: Material{
			Colour:              [3]float32{0.1, 0.2, 0.3},
			Smoothness:          0.4,
			EmissionColour:      [3]float32{1, 1, 1},
			EmissionStrength:    7,
			SpecularColour:      [3]float32{0.9, 0.8, 0.7},
			Flag:                FlagCheckerboard,
			SpecularProbability: 0.25,
		},
	}
	if !bytes.Equal(s.Marshal(), common.StructToBytes(&s)) {
		t.Error("Sphere.Marshal disagrees with its in-memory layout")
	}

	q := Quad{Position: [3]float32{1, 2, 3}, Width: 2, Normal: [3]float32{0, -1, 0}, Height: 3, Right: [3]float32{1, 0, 0}, Up: [3]float32{0, 0, 1}}
	if !bytes.Equal(q.Marshal(), common.StructToBytes(&q)) {
		t.Error("Quad.Marshal disagrees with its in-memory layout")
	}

	p := Plane{Position: [3]float32{0, -1, 0}, Normal: [3]float32{0, 1, 0}, Material: DefaultMaterial()}
	if !bytes.Equal(p.Marshal(), common.StructToBytes(&p)) {
		t.Error("Plane.Marshal disagrees with its in-memory layout")
	}
}

func TestStoreCopiesInput(t *testing.T) {
	in := []Sphere{{Radius: 1}, {Radius: 2}}
	s := NewStore()
	s.Load(in, nil, nil)

	in[0].Radius = 99
	if got := s.Spheres()[0].Radius; got != 1 {
		t.Errorf("store aliased caller slice: radius = %v, want 1", got)
	}

	out := s.Spheres()
	out[1].Radius = 42
	if got := s.Spheres()[1].Radius; got != 2 {
		t.Errorf("Spheres() exposed internal slice: radius = %v, want 2", got)
	}
}

func TestStoreCountsAndBytes(t *testing.T) {
	s := NewStore()
	s.Load([]Sphere{{}, {}, {}}, []Plane{{}}, nil)

	if got := s.Count(KindSphere); got != 3 {
		t.Errorf("sphere count = %d, want 3", got)
	}
	if got := len(s.Bytes(KindSphere)); got != 3*KindSphere.RecordSize() {
		t.Errorf("sphere bytes = %d, want %d", got, 3*KindSphere.RecordSize())
	}
	if got := s.Count(KindQuad); got != 0 {
		t.Errorf("quad count = %d, want 0", got)
	}
	if s.Bytes(KindQuad) != nil {
		t.Error("expected nil bytes for empty quad array")
	}

	s.Load(nil, nil, nil)
	for _, k := range Kinds {
		if s.Count(k) != 0 {
			t.Errorf("%s count = %d after empty load", k, s.Count(k))
		}
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	var sp Sphere
	if err := json.Unmarshal([]byte(`{"position":[0,1,0]}`), &sp); err != nil {
		t.Fatal(err)
	}
	if sp.Radius != 1 {
		t.Errorf("default radius = %v, want 1", sp.Radius)
	}
	if sp.Material != DefaultMaterial() {
		t.Errorf("default material = %+v", sp.Material)
	}

	var pl Plane
	if err := json.Unmarshal([]byte(`{"material":{"smoothness":0.5}}`), &pl); err != nil {
		t.Fatal(err)
	}
	if pl.Normal != [3]float32{0, 1, 0} {
		t.Errorf("default normal = %v", pl.Normal)
	}
	if pl.Material.Smoothness != 0.5 || pl.Material.Colour != DefaultMaterial().Colour {
		t.Errorf("partial material = %+v", pl.Material)
	}

	var q Quad
	if err := json.Unmarshal([]byte(`{"width":4}`), &q); err != nil {
		t.Fatal(err)
	}
	if q.Width != 4 || q.Height != 1 || q.Up != [3]float32{0, 0, 1} {
		t.Errorf("quad defaults = %+v", q)
	}
}
