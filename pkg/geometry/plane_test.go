package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-normals-raytracer/pkg/core"
)

func TestPlane_Hit(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 2, 0))

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{"straight down", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), true, 2},
		{"oblique", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, -1, 0)), true, 1},
		{"from below", core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0)), true, 2},
		{"pointing away", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)), false, 0},
		{"parallel", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := plane.Hit(tt.ray, 0.0001, math.Inf(1))
			require.Equal(t, tt.expectHit, isHit)
			if !tt.expectHit {
				return
			}
			assert.InDelta(t, tt.expectedT, hit.T, 1e-12)
			assert.InDelta(t, -1.0, hit.Point.Y, 1e-12)
			assert.Equal(t, core.NewVec3(0, 1, 0), hit.Normal)
		})
	}
}

func TestPlane_ImplementsShape(t *testing.T) {
	var shapes []Shape
	shapes = append(shapes, NewSphere(core.NewVec3(0, 0, 0), 1), NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	assert.Len(t, shapes, 2)
}
