package scene

import (
	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
)

// NewDefaultScene creates the classic small sphere resting on a huge ground sphere
func NewDefaultScene() *Scene {
	return NewScene(geometry.DefaultCamera(),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100),
	)
}

// NewSkyScene creates an empty scene that shows only the background gradient
func NewSkyScene() *Scene {
	return NewScene(geometry.DefaultCamera())
}

// NewPlaneScene creates a sphere standing on an infinite ground plane
func NewPlaneScene() *Scene {
	return NewScene(geometry.DefaultCamera(),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0)),
	)
}
