package scene

import (
	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
)

// NewSphereGridScene creates a 10x10 grid of spheres on a ground plane
func NewSphereGridScene() *Scene {
	camera := geometry.NewCameraFromConfig(geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 2.0,
	})

	s := NewScene(camera, geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))

	const gridSize = 10
	const spacing = 1.0
	const radius = 0.4
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			center := core.NewVec3(float64(col)*spacing, radius, float64(row)*spacing)
			s.Add(geometry.NewSphere(center, radius))
		}
	}

	return s
}
