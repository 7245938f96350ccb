package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assert.Equal(t, NewVec3(5, -3, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, 7, -3), a.Subtract(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Multiply(2))
	assert.Equal(t, NewVec3(0.5, 1, 1.5), a.Divide(2))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, NewVec3(-1, -2, -3), a.Negate())
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, NewVec3(0, 0, -1), y.Cross(x))
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"axis aligned", NewVec3(0, 5, 0), NewVec3(0, 1, 0)},
		{"diagonal", NewVec3(3, 0, 4), NewVec3(0.6, 0, 0.8)},
		{"zero vector", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			assert.InDelta(t, tt.expected.X, result.X, 1e-12)
			assert.InDelta(t, tt.expected.Y, result.Y, 1e-12)
			assert.InDelta(t, tt.expected.Z, result.Z, 1e-12)
		})
	}

	assert.InDelta(t, 1.0, NewVec3(-2, 7, 1).Normalize().Length(), 1e-12)
}

func TestVec3_Index(t *testing.T) {
	v := NewVec3(7, 8, 9)
	for i, expected := range []float64{7, 8, 9} {
		assert.Equal(t, expected, v.Index(i))
	}
	assert.Panics(t, func() { v.Index(3) })
	assert.Equal(t, [3]float64{7, 8, 9}, v.Array())
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.25, 3).Clamp(0, 1)
	assert.Equal(t, NewVec3(0, 0.25, 1), v)
}

func TestVec3_LengthOfDivideByZero(t *testing.T) {
	// No guard: degenerate input propagates as Inf.
	v := NewVec3(1, 0, 0).Divide(0)
	assert.True(t, math.IsInf(v.X, 1))
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(1, 1, 1), NewVec3(0, 2, 0))

	assert.Equal(t, NewVec3(1, 1, 1), r.At(0))
	assert.Equal(t, NewVec3(1, 4, 1), r.At(1.5))
	assert.Equal(t, NewVec3(1, -1, 1), r.At(-1))
}
