package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-normals-raytracer/pkg/core"
)

// SceneFile contains the parsed contents of a YAML scene description
type SceneFile struct {
	Camera *CameraSpec `yaml:"camera"`
	Shapes []ShapeSpec `yaml:"shapes"`
}

// CameraSpec describes the camera either by its viewport vectors or as a
// look-at camera. Setting LookAt selects the look-at form.
type CameraSpec struct {
	Origin          Vec3Value `yaml:"origin"`
	LowerLeftCorner Vec3Value `yaml:"lower_left_corner"`
	Horizontal      Vec3Value `yaml:"horizontal"`
	Vertical        Vec3Value `yaml:"vertical"`

	LookAt      *Vec3Value `yaml:"look_at"`
	Up          Vec3Value  `yaml:"up"`
	VFov        float64    `yaml:"vfov"`
	AspectRatio float64    `yaml:"aspect_ratio"`
}

// ShapeSpec holds exactly one shape kind
type ShapeSpec struct {
	Sphere *SphereSpec `yaml:"sphere"`
	Plane  *PlaneSpec  `yaml:"plane"`
}

// SphereSpec describes a sphere
type SphereSpec struct {
	Center Vec3Value `yaml:"center"`
	Radius float64   `yaml:"radius"`
}

// PlaneSpec describes an infinite plane
type PlaneSpec struct {
	Point  Vec3Value `yaml:"point"`
	Normal Vec3Value `yaml:"normal"`
}

// Vec3Value is a YAML triple such as [0, 1, 0]
type Vec3Value [3]float64

// Vec3 converts the triple to a core.Vec3
func (v Vec3Value) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// LoadSceneFile reads and parses a YAML scene description from disk
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	sceneFile, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sceneFile, nil
}

// ParseScene parses a YAML scene description and validates it
func ParseScene(data []byte) (*SceneFile, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var sceneFile SceneFile
	if err := decoder.Decode(&sceneFile); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := sceneFile.Validate(); err != nil {
		return nil, err
	}
	return &sceneFile, nil
}

// Validate checks the scene-description preconditions that the geometry
// itself does not check
func (sf *SceneFile) Validate() error {
	if sf.Camera != nil && sf.Camera.LookAt != nil {
		if sf.Camera.VFov <= 0 || sf.Camera.VFov >= 180 {
			return fmt.Errorf("camera: vfov must be in (0, 180), got %g", sf.Camera.VFov)
		}
		if sf.Camera.AspectRatio <= 0 {
			return fmt.Errorf("camera: aspect_ratio must be positive, got %g", sf.Camera.AspectRatio)
		}
	}

	for i, shape := range sf.Shapes {
		switch {
		case shape.Sphere != nil && shape.Plane != nil:
			return fmt.Errorf("shape %d: only one shape kind may be set", i)
		case shape.Sphere != nil:
			if shape.Sphere.Radius <= 0 {
				return fmt.Errorf("shape %d: sphere radius must be positive, got %g", i, shape.Sphere.Radius)
			}
		case shape.Plane != nil:
			if shape.Plane.Normal.Vec3().LengthSquared() == 0 {
				return fmt.Errorf("shape %d: plane normal must be non-zero", i)
			}
		default:
			return fmt.Errorf("shape %d: no shape kind set", i)
		}
	}
	return nil
}
