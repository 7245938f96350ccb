package scene

import (
	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
	"github.com/df07/go-normals-raytracer/pkg/loaders"
)

// NewFromFile builds a scene from a YAML scene description
func NewFromFile(path string) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromSceneFile(sceneFile), nil
}

// NewFromSceneFile builds a scene from an already parsed description
func NewFromSceneFile(sceneFile *loaders.SceneFile) *Scene {
	s := NewScene(cameraFromSpec(sceneFile.Camera))

	for _, shape := range sceneFile.Shapes {
		switch {
		case shape.Sphere != nil:
			s.Add(geometry.NewSphere(shape.Sphere.Center.Vec3(), shape.Sphere.Radius))
		case shape.Plane != nil:
			s.Add(geometry.NewPlane(shape.Plane.Point.Vec3(), shape.Plane.Normal.Vec3()))
		}
	}

	return s
}

func cameraFromSpec(spec *loaders.CameraSpec) *geometry.Camera {
	if spec == nil {
		return geometry.DefaultCamera()
	}

	if spec.LookAt != nil {
		up := spec.Up.Vec3()
		if up.LengthSquared() == 0 {
			up = core.NewVec3(0, 1, 0)
		}
		return geometry.NewCameraFromConfig(geometry.CameraConfig{
			Center:      spec.Origin.Vec3(),
			LookAt:      spec.LookAt.Vec3(),
			Up:          up,
			VFov:        spec.VFov,
			AspectRatio: spec.AspectRatio,
		})
	}

	return geometry.NewCamera(
		spec.Origin.Vec3(),
		spec.LowerLeftCorner.Vec3(),
		spec.Horizontal.Vec3(),
		spec.Vertical.Vec3(),
	)
}
