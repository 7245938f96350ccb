package geometry

import "github.com/df07/go-normals-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T      float64   // Parameter t along the ray
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Unit outward surface normal at Point
}

// Shape interface for objects that can be hit by rays.
// A valid hit satisfies tMin < T < tMax; on a miss the zero HitRecord is returned.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
}
