package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
)

// MockWorld implements Hitter for testing
type MockWorld struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool)
}

func (m MockWorld) Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func missWorld() MockWorld {
	return MockWorld{hitFn: func(core.Ray, float64, float64) (geometry.HitRecord, bool) {
		return geometry.HitRecord{}, false
	}}
}

func TestRayColor_SkyEndpoints(t *testing.T) {
	world := missWorld()

	up := RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), world)
	assert.Equal(t, core.NewVec3(0.5, 0.7, 1.0), up)

	down := RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)), world)
	assert.Equal(t, core.NewVec3(1, 1, 1), down)

	// Direction length does not matter
	assert.Equal(t, up, RayColor(core.NewRay(core.NewVec3(3, 3, 3), core.NewVec3(0, 17, 0)), world))
}

func TestRayColor_SkyHorizon(t *testing.T) {
	color := RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), missWorld())
	assert.InDelta(t, 0.75, color.X, 1e-12)
	assert.InDelta(t, 0.85, color.Y, 1e-12)
	assert.InDelta(t, 1.0, color.Z, 1e-12)
}

func TestRayColor_NormalVisualization(t *testing.T) {
	tests := []struct {
		name     string
		normal   core.Vec3
		expected core.Vec3
	}{
		{"facing camera", core.NewVec3(0, 0, 1), core.NewVec3(0.5, 0.5, 1)},
		{"facing up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 1, 0.5)},
		{"facing left", core.NewVec3(-1, 0, 0), core.NewVec3(0, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := MockWorld{hitFn: func(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
				return geometry.HitRecord{T: 1, Normal: tt.normal}, true
			}}
			color := RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world)
			assert.Equal(t, tt.expected, color)
		})
	}
}

func TestRayColor_QueriesFromEpsilon(t *testing.T) {
	var gotMin, gotMax float64
	world := MockWorld{hitFn: func(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
		gotMin, gotMax = tMin, tMax
		return geometry.HitRecord{}, false
	}}

	RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world)

	assert.Equal(t, 0.0001, gotMin)
	assert.True(t, gotMax > 1e300, "upper bound should be +Inf, got %v", gotMax)
}

func TestRayColor_SphereInScene(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
	world := MockWorld{hitFn: sphere.Hit}

	// Straight at the sphere: normal (0,0,1)
	color := RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world)
	assert.InDelta(t, 0, color.Subtract(core.NewVec3(0.5, 0.5, 1)).Length(), 1e-12)
}
