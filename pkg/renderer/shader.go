package renderer

import (
	"math"

	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
)

// HitEpsilon is the lower bound of the hit interval for camera rays. It keeps
// a ray from re-hitting the surface it starts on due to rounding.
const HitEpsilon = 0.0001

var (
	white   = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// Hitter is anything that can resolve the nearest hit for a ray
type Hitter interface {
	Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool)
}

// RayColor returns the normal-visualization color on a hit and the sky
// gradient on a miss. Components are not clamped.
func RayColor(r core.Ray, world Hitter) core.Vec3 {
	if hit, isHit := world.Hit(r, HitEpsilon, math.Inf(1)); isHit {
		return NormalColor(hit.Normal)
	}
	return BackgroundGradient(r)
}

// NormalColor maps each normal component from [-1,1] to [0,1]
func NormalColor(normal core.Vec3) core.Vec3 {
	return normal.Add(white).Multiply(0.5)
}

// BackgroundGradient blends white at the bottom into sky blue at the top
// based on the y component of the unit ray direction
func BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return white.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}
