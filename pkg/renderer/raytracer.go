package renderer

import (
	"image"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-normals-raytracer/pkg/core"
	"github.com/df07/go-normals-raytracer/pkg/geometry"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of jittered rays averaged per pixel
}

// DefaultSamplingConfig returns the default of 10 samples per pixel
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	Hitter
	GetCamera() *geometry.Camera
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene  Scene
	width  int
	height int
	config SamplingConfig
	logger zerolog.Logger
}

// NewRaytracer creates a new raytracer. Width and height must be positive.
func NewRaytracer(scene Scene, width, height int, logger zerolog.Logger) *Raytracer {
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		config: DefaultSamplingConfig(),
		logger: logger,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// GetSamplingConfig returns the current sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// Size returns the image dimensions
func (rt *Raytracer) Size() (width, height int) {
	return rt.width, rt.height
}

// RenderPass renders the whole image on the calling goroutine
func (rt *Raytracer) RenderPass(random Sampler) (*Framebuffer, RenderStats) {
	start := time.Now()
	fb := NewFramebuffer(rt.width, rt.height)

	stats := rt.RenderBounds(fb.Bounds(), fb, random)
	stats.Tiles = 1
	stats.Duration = time.Since(start)

	rt.logger.Debug().
		Int("width", rt.width).
		Int("height", rt.height).
		Int("samples", rt.config.SamplesPerPixel).
		Dur("elapsed", stats.Duration).
		Msg("single-threaded pass complete")

	return fb, stats
}

// RenderBounds renders the output pixels inside bounds. Output row y
// corresponds to image row j = height-1-y, so rows are visited from the top
// of the image downwards.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, fb *Framebuffer, random Sampler) RenderStats {
	camera := rt.scene.GetCamera()
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			colorVec := rt.samplePixel(camera, i, j, random)
			fb.Set(i, y, ToPixel(colorVec))
			stats.TotalSamples += rt.config.SamplesPerPixel
		}
	}

	stats.finalize()
	return stats
}

// samplePixel averages SamplesPerPixel jittered rays through pixel (i, j)
func (rt *Raytracer) samplePixel(camera *geometry.Camera, i, j int, random Sampler) core.Vec3 {
	colorAccum := core.Vec3{}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := (float64(i) + random.Float64()) / float64(rt.width)
		v := (float64(j) + random.Float64()) / float64(rt.height)

		ray := camera.GetRay(u, v)
		colorAccum = colorAccum.Add(RayColor(ray, rt.scene))
	}

	return colorAccum.Divide(float64(rt.config.SamplesPerPixel))
}
