package renderer

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
)

// MockScene implements Scene for testing
type MockScene struct {
	camera *geometry.Camera
	shapes []geometry.Shape
}

func (m MockScene) GetCamera() *geometry.Camera { return m.camera }

func (m MockScene) Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	var closest geometry.HitRecord
	hitAnything := false
	for _, shape := range m.shapes {
		if hit, ok := shape.Hit(ray, tMin, tMax); ok {
			hitAnything = true
			tMax = hit.T
			closest = hit
		}
	}
	return closest, hitAnything
}

// constantSampler always returns the same value; zero gives pixel-corner
// rays with no jitter
type constantSampler float64

func (c constantSampler) Float64() float64 {
	return float64(c)
}

// countingSampler records how many values were drawn
type countingSampler struct {
	value float64
	calls int
}

func (c *countingSampler) Float64() float64 {
	c.calls++
	return c.value
}

func newTestRaytracer(shapes []geometry.Shape, width, height, samples int) *Raytracer {
	scene := MockScene{camera: geometry.DefaultCamera(), shapes: shapes}
	rt := NewRaytracer(scene, width, height, zerolog.Nop())
	rt.SetSamplingConfig(SamplingConfig{SamplesPerPixel: samples})
	return rt
}

func analyticSkyPixel(direction core.Vec3) uint32 {
	t := 0.5 * (direction.Y/math.Sqrt(direction.Dot(direction)) + 1.0)
	r := (1-t)*1 + t*0.5
	g := (1-t)*1 + t*0.7
	b := (1-t)*1 + t*1.0
	return PackARGB(uint8(255.99*r), uint8(255.99*g), uint8(255.99*b), OpaqueAlpha)
}

func TestRaytracer_EndToEndEmptyScene(t *testing.T) {
	rt := newTestRaytracer(nil, 2, 1, 1)

	fb, stats := rt.RenderPass(constantSampler(0))

	// u in {0, 0.5}, v = 0 on the standard viewport
	assert.Equal(t, analyticSkyPixel(core.NewVec3(-2, -1, -1)), fb.At(0, 0))
	assert.Equal(t, analyticSkyPixel(core.NewVec3(0, -1, -1)), fb.At(1, 0))

	assert.Equal(t, 2, stats.TotalPixels)
	assert.Equal(t, 2, stats.TotalSamples)
	assert.Equal(t, 1.0, stats.AverageSamples)
}

func TestRaytracer_RowOrder(t *testing.T) {
	// Output row 0 is the top of the image, so it sees more sky blue
	rt := newTestRaytracer(nil, 1, 4, 1)
	fb, _ := rt.RenderPass(constantSampler(0.5))

	for y := 1; y < 4; y++ {
		_, _, above, _ := UnpackARGB(fb.At(0, y-1))
		_, _, below, _ := UnpackARGB(fb.At(0, y))
		assert.Equal(t, uint8(255), above)
		assert.Equal(t, uint8(255), below)

		rAbove, _, _, _ := UnpackARGB(fb.At(0, y-1))
		rBelow, _, _, _ := UnpackARGB(fb.At(0, y))
		assert.Less(t, rAbove, rBelow, "row %d should be bluer than row %d", y-1, y)
	}
}

func TestRaytracer_SamplesDrawnPerPixel(t *testing.T) {
	rt := newTestRaytracer(nil, 3, 2, 5)
	sampler := &countingSampler{value: 0.25}

	_, stats := rt.RenderPass(sampler)

	// Two draws (u then v) per sample
	assert.Equal(t, 3*2*5*2, sampler.calls)
	assert.Equal(t, 5.0, stats.AverageSamples)
}

func TestRaytracer_AveragesSamples(t *testing.T) {
	// Alternate jitter so half the samples land on each side of a pixel
	values := []float64{0, 0, 0.999, 0.999}
	idx := 0
	sampler := samplerFunc(func() float64 {
		v := values[idx%len(values)]
		idx++
		return v
	})

	rt := newTestRaytracer(nil, 1, 1, 2)
	fb, _ := rt.RenderPass(sampler)

	camera := geometry.DefaultCamera()
	first := BackgroundGradient(camera.GetRay(0, 0))
	second := BackgroundGradient(camera.GetRay(0.999, 0.999))
	expected := ToPixel(first.Add(second).Divide(2))

	assert.Equal(t, expected, fb.At(0, 0))
}

type samplerFunc func() float64

func (f samplerFunc) Float64() float64 { return f() }

func TestRaytracer_SphereCentrePixelIsNormalColor(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
	rt := newTestRaytracer([]geometry.Shape{sphere}, 200, 100, 1)

	fb, _ := rt.RenderPass(constantSampler(0))

	// Pixel (100, 50) fires the ray through the viewport centre
	assert.Equal(t, PackARGB(127, 127, 255, OpaqueAlpha), fb.At(100, 100-1-50))
}

func TestRaytracer_RenderBoundsMatchesFullPass(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
	rt := newTestRaytracer([]geometry.Shape{sphere}, 40, 20, 2)

	full, _ := rt.RenderPass(constantSampler(0.5))

	tiled := NewFramebuffer(40, 20)
	for _, tile := range NewTileGrid(40, 20, 16, 0) {
		rt.RenderBounds(tile.Bounds, tiled, constantSampler(0.5))
	}

	assert.Equal(t, full.Pixels(), tiled.Pixels())
}

func TestRaytracer_RenderParallelIndependentOfWorkers(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100)
	rt := newTestRaytracer([]geometry.Shape{sphere, ground}, 96, 48, 4)

	config := ParallelConfig{TileSize: 16, Seed: 7}

	var digests []uint64
	for _, workers := range []int{1, 3, 8} {
		config.NumWorkers = workers
		fb, stats, err := rt.RenderParallel(context.Background(), config)
		require.NoError(t, err)

		assert.Equal(t, 96*48, stats.TotalPixels)
		assert.Equal(t, 18, stats.Tiles)
		assert.Equal(t, 4.0, stats.AverageSamples)
		digests = append(digests, fb.Digest())
	}

	assert.Equal(t, digests[0], digests[1])
	assert.Equal(t, digests[0], digests[2])
}

func TestRaytracer_RenderParallelCancelled(t *testing.T) {
	rt := newTestRaytracer(nil, 64, 64, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb, _, err := rt.RenderParallel(ctx, DefaultParallelConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, fb)
}

func TestRaytracer_SeededRandomSourceIsReproducible(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
	rt := newTestRaytracer([]geometry.Shape{sphere}, 32, 16, 3)

	a, _ := rt.RenderPass(rand.New(rand.NewSource(99)))
	b, _ := rt.RenderPass(rand.New(rand.NewSource(99)))

	assert.Equal(t, a.Digest(), b.Digest())
}

func TestDefaultSamplingConfig(t *testing.T) {
	assert.Equal(t, 10, DefaultSamplingConfig().SamplesPerPixel)

	rt := newTestRaytracer(nil, 8, 4, 3)
	assert.Equal(t, 3, rt.GetSamplingConfig().SamplesPerPixel)
	w, h := rt.Size()
	assert.Equal(t, []int{8, 4}, []int{w, h})
}
