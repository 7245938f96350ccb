package geometry

import (
	"math"

	"github.com/df07/go-normals-raytracer/pkg/core"
)

// Sphere represents a sphere shape. Radius must be positive.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic in t with the factor of two folded into b
	a := ray.Direction.Dot(ray.Direction)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - a*c
	if discriminant <= 0 {
		return HitRecord{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Near root first: the entry point from outside, the exit point from inside
	root := (-b - sqrtD) / a
	if !(root > tMin && root < tMax) {
		root = (-b + sqrtD) / a
		if !(root > tMin && root < tMax) {
			return HitRecord{}, false
		}
	}

	point := ray.At(root)
	return HitRecord{
		T:      root,
		Point:  point,
		Normal: point.Subtract(s.Center).Divide(s.Radius),
	}, true
}
