package renderer

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/df07/go-normals-raytracer/pkg/core"
)

const (
	// ColorScale converts a [0,1] channel to a byte by truncation
	ColorScale = 255.99
	// OpaqueAlpha is the alpha value packed into every pixel
	OpaqueAlpha = 0xFF
)

// Framebuffer is a row-major buffer of packed ARGB pixels, row 0 at the top
type Framebuffer struct {
	Width  int
	Height int
	pixels []uint32
}

// NewFramebuffer creates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]uint32, width*height),
	}
}

// Set stores a packed pixel
func (fb *Framebuffer) Set(x, y int, pixel uint32) {
	fb.pixels[y*fb.Width+x] = pixel
}

// At returns the packed pixel at (x, y)
func (fb *Framebuffer) At(x, y int) uint32 {
	return fb.pixels[y*fb.Width+x]
}

// Pixels returns the underlying row-major pixel slice
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.pixels
}

// Bounds returns the framebuffer rectangle
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// PackARGB packs channels as alpha (bits 24-31), red (16-23), green (8-15), blue (0-7)
func PackARGB(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackARGB splits a packed pixel into its channels
func UnpackARGB(pixel uint32) (r, g, b, a uint8) {
	return uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel), uint8(pixel >> 24)
}

// ToChannel converts a color component to a byte. The component is clamped
// to [0,1] first so out-of-range shader output cannot wrap; NaN maps to 0.
func ToChannel(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	c = max(0, min(1, c))
	return uint8(ColorScale * c)
}

// ToPixel converts an averaged color to a packed opaque pixel
func ToPixel(colorVec core.Vec3) uint32 {
	return PackARGB(ToChannel(colorVec.X), ToChannel(colorVec.Y), ToChannel(colorVec.Z), OpaqueAlpha)
}

// Image converts the framebuffer to an RGBA image for encoding
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b, a := UnpackARGB(fb.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}

// Digest returns an xxhash of the pixel data, useful for comparing seeded renders
func (fb *Framebuffer) Digest() uint64 {
	digest := xxhash.New()
	var buf [4]byte
	for _, pixel := range fb.pixels {
		binary.LittleEndian.PutUint32(buf[:], pixel)
		digest.Write(buf[:])
	}
	return digest.Sum64()
}
