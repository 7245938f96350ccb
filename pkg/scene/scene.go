package scene

import (
	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering. It is built once,
// then only read while rendering, so it may be shared between workers.
type Scene struct {
	Camera *geometry.Camera
	Shapes []geometry.Shape // Objects in the scene, in insertion order
}

// NewScene creates a scene with the given camera and shapes
func NewScene(camera *geometry.Camera, shapes ...geometry.Shape) *Scene {
	if camera == nil {
		camera = geometry.DefaultCamera()
	}
	return &Scene{
		Camera: camera,
		Shapes: append([]geometry.Shape(nil), shapes...),
	}
}

// Add appends a shape to the scene
func (s *Scene) Add(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// Hit returns the nearest hit among all shapes within (tMin, tMax).
// Each accepted hit narrows the upper bound for the shapes after it.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	var closest geometry.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// HitShape is Hit but also reports which shape produced the nearest hit
func (s *Scene) HitShape(ray core.Ray, tMin, tMax float64) (geometry.Shape, geometry.HitRecord, bool) {
	var closest geometry.HitRecord
	var closestShape geometry.Shape
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
			closestShape = shape
		}
	}

	return closestShape, closest, closestShape != nil
}
