package geometry

import (
	"math"

	"github.com/df07/go-normals-raytracer/pkg/core"
)

// Camera maps normalized image-plane coordinates to rays through an
// axis-aligned viewport rectangle.
type Camera struct {
	Origin          core.Vec3
	LowerLeftCorner core.Vec3
	Horizontal      core.Vec3
	Vertical        core.Vec3
}

// CameraConfig describes a look-at camera
type CameraConfig struct {
	Center      core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// NewCamera creates a camera from its four defining vectors
func NewCamera(origin, lowerLeftCorner, horizontal, vertical core.Vec3) *Camera {
	return &Camera{
		Origin:          origin,
		LowerLeftCorner: lowerLeftCorner,
		Horizontal:      horizontal,
		Vertical:        vertical,
	}
}

// DefaultCamera returns the standard 4x2 viewport one unit in front of the origin
func DefaultCamera() *Camera {
	return NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(-2, -1, -1),
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 2, 0),
	)
}

// NewCameraFromConfig derives the viewport vectors for a look-at camera
// with a focal distance of one unit.
func NewCameraFromConfig(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return NewCamera(config.Center, lowerLeftCorner, horizontal, vertical)
}

// GetRay returns the ray from Origin toward the viewport point at (u, v).
// Values outside [0,1] are extrapolated, not clamped. The direction is the
// viewport point minus Origin, so it equals lowerLeft + u*horizontal +
// v*vertical only when Origin is (0,0,0).
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.LowerLeftCorner.
		Add(c.Horizontal.Multiply(u)).
		Add(c.Vertical.Multiply(v)).
		Subtract(c.Origin)

	return core.NewRay(c.Origin, direction)
}
