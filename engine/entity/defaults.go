package entity

import "encoding/json"

// DefaultMaterial returns the material used for any field a scene file leaves out.
//
// Returns:
//   - Material: a light grey diffuse, non-emissive material
func DefaultMaterial() Material {
	return Material{
		Colour:         [3]float32{0.8, 0.8, 0.8},
		SpecularColour: [3]float32{1, 1, 1},
	}
}

// UnmarshalJSON decodes a material, keeping DefaultMaterial values for absent keys.
func (m *Material) UnmarshalJSON(data []byte) error {
	type raw Material
	r := raw(DefaultMaterial())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*m = Material(r)
	return nil
}

// UnmarshalJSON decodes a sphere. Radius defaults to 1.
func (s *Sphere) UnmarshalJSON(data []byte) error {
	type raw Sphere
	r := raw{Radius: 1, Material: DefaultMaterial()}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*s = Sphere(r)
	return nil
}

// UnmarshalJSON decodes a plane. Normal defaults to +Y.
func (p *Plane) UnmarshalJSON(data []byte) error {
	type raw Plane
	r := raw{Normal: [3]float32{0, 1, 0}, Material: DefaultMaterial()}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = Plane(r)
	return nil
}

// UnmarshalJSON decodes a quad lying in the XZ plane facing +Y unless overridden.
func (q *Quad) UnmarshalJSON(data []byte) error {
	type raw Quad
	r := raw{
		Width:    1,
		Height:   1,
		Normal:   [3]float32{0, 1, 0},
		Right:    [3]float32{1, 0, 0},
		Up:       [3]float32{0, 0, 1},
		Material: DefaultMaterial(),
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*q = Quad(r)
	return nil
}
