// Package display presents a rendered framebuffer in an SDL window.
package display

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/rs/zerolog/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/df07/go-normals-raytracer/pkg/renderer"
)

const frameDelayMs = 16

// Show opens a window the size of fb and presents it until the window is
// closed or Escape is pressed. It must be called from the main goroutine.
func Show(fb *renderer.Framebuffer, title string) error {
	if fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("cannot display empty framebuffer %dx%d", fb.Width, fb.Height)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log.Debug().Msgf("using SDL v%d.%d.%d", sdl.MAJOR_VERSION, sdl.MINOR_VERSION, sdl.PATCHLEVEL)
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("failed to initialize SDL: %w", err)
	}
	defer sdl.Quit()

	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(fb.Width),
		int32(fb.Height),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Destroy()

	canvas, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("failed to create SDL renderer: %w", err)
	}
	defer canvas.Destroy()

	// Packed pixels are already A<<24|R<<16|G<<8|B
	texture, err := canvas.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STATIC,
		int32(fb.Width),
		int32(fb.Height),
	)
	if err != nil {
		return fmt.Errorf("failed to create texture: %w", err)
	}
	defer texture.Destroy()

	pixels := fb.Pixels()
	if err := texture.Update(nil, unsafe.Pointer(&pixels[0]), fb.Width*4); err != nil {
		return fmt.Errorf("failed to upload framebuffer: %w", err)
	}

	log.Info().Int("width", fb.Width).Int("height", fb.Height).Msg("window open, press ESC to exit")

	for running := true; running; {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if shouldClose(event) {
				running = false
			}
		}

		if err := canvas.Clear(); err != nil {
			return fmt.Errorf("failed to clear window: %w", err)
		}
		if err := canvas.Copy(texture, nil, nil); err != nil {
			return fmt.Errorf("failed to draw framebuffer: %w", err)
		}
		canvas.Present()
		sdl.Delay(frameDelayMs)
	}

	return nil
}

// shouldClose reports whether an event ends the presentation loop
func shouldClose(event sdl.Event) bool {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		return ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE
	case *sdl.WindowEvent:
		return ev.Event == sdl.WINDOWEVENT_CLOSE
	}
	return false
}
