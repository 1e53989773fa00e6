package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// ErrInvalidScene is returned when a scene document parses but cannot be rendered.
var ErrInvalidScene = errors.New("invalid scene")

// Load reads a scene document from path. Absent keys keep their defaults.
// A failed load returns a nil scene, so a caller holding a previous scene keeps it intact.
//
// Parameters:
//   - path: the JSON scene file
//
// Returns:
//   - *Scene: the parsed scene
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	log.Printf("[Scene] Loaded '%s' (%d spheres, %d planes, %d quads)", s.Name, len(s.Spheres), len(s.Planes), len(s.Quads))
	return s, nil
}

// Parse decodes a scene document. A document without a name is called UnnamedSceneName.
//
// Parameters:
//   - data: the JSON document
//
// Returns:
//   - *Scene: the parsed scene
//   - error: an error if the document is malformed or invalid
func Parse(data []byte) (*Scene, error) {
	s := New(WithName(UnnamedSceneName))
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the tracing parameters. Geometry is not inspected.
//
// Returns:
//   - error: an ErrInvalidScene wrapped error, or nil
func (s *Scene) Validate() error {
	if s.Tracing.MaxBounces < 1 {
		return fmt.Errorf("%w: maxBounces must be at least 1, got %d", ErrInvalidScene, s.Tracing.MaxBounces)
	}
	if s.Tracing.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samplesPerPixel must be at least 1, got %d", ErrInvalidScene, s.Tracing.SamplesPerPixel)
	}
	if s.Tracing.Gamma <= 0 {
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidScene, s.Tracing.Gamma)
	}
	return nil
}

// Save writes the scene to path in the same document format Load reads.
//
// Parameters:
//   - path: the destination file
//
// Returns:
//   - error: an error if encoding or writing fails
func (s *Scene) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write scene file %s: %w", path, err)
	}
	return nil
}
