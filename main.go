package main

import (
	"context"
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/go-normals-raytracer/pkg/config"
	"github.com/df07/go-normals-raytracer/pkg/display"
	"github.com/df07/go-normals-raytracer/pkg/renderer"
	"github.com/df07/go-normals-raytracer/pkg/scene"
	"github.com/df07/go-normals-raytracer/web/server"
)

// Overrides are command line values that replace config file values when set
type Overrides struct {
	Width          int    `help:"Image width in pixels."`
	Height         int    `help:"Image height in pixels."`
	Samples        int    `help:"Jittered samples per pixel."`
	Workers        int    `help:"Number of render workers (0 uses the config value)."`
	Seed           int64  `help:"Seed for the jitter random source."`
	Scene          string `help:"Built-in scene name or path to a .yaml scene file." short:"s"`
	SingleThreaded bool   `help:"Render with the single-threaded reference loop."`
}

var CLI struct {
	Debug  bool     `help:"Whether to enable debug logging."`
	Config []string `help:"Configuration files layered over the defaults." type:"file" short:"c"`

	Overrides `embed:""`

	Show struct {
	} `cmd:"" default:"1" help:"Render the scene and present it in a window."`

	Render struct {
		Output string `help:"Path of the PNG to write." short:"o"`
	} `cmd:"" help:"Render the scene to a PNG file."`

	Serve struct {
		Port int `help:"Port to listen on."`
	} `cmd:"" help:"Serve renders over HTTP."`

	Scenes struct {
	} `cmd:"" help:"List built-in scenes and scene files."`

	ConfigCmd struct {
	} `cmd:"" name:"config" help:"Write the default configuration to standard output."`
}

// apply copies every set override onto cfg
func (o Overrides) apply(cfg *config.Config) {
	if o.Width > 0 {
		cfg.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Height = o.Height
	}
	if o.Samples > 0 {
		cfg.SamplesPerPixel = o.Samples
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	if o.Scene != "" {
		cfg.Scene = o.Scene
	}
	if o.SingleThreaded {
		cfg.SingleThreaded = true
	}
}

// loadConfig layers the config files, applies the overrides and validates the result
func loadConfig(paths []string, overrides Overrides) (*config.Config, error) {
	cfg, err := config.Process(paths)
	if err != nil {
		return nil, err
	}

	overrides.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// renderFrame builds the configured scene and renders one frame
func renderFrame(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*renderer.Framebuffer, error) {
	sceneObj, err := scene.Create(cfg.Scene)
	if err != nil {
		return nil, err
	}

	raytracer := renderer.NewRaytracer(sceneObj, cfg.Width, cfg.Height, logger)
	raytracer.SetSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: cfg.SamplesPerPixel})

	seed := cfg.ResolvedSeed()
	width, height := raytracer.Size()
	logger.Info().
		Str("scene", cfg.Scene).
		Int("shapes", sceneObj.GetPrimitiveCount()).
		Int("width", width).
		Int("height", height).
		Int("samples", raytracer.GetSamplingConfig().SamplesPerPixel).
		Int64("seed", seed).
		Msg("rendering")

	var fb *renderer.Framebuffer
	var stats renderer.RenderStats
	if cfg.SingleThreaded {
		fb, stats = raytracer.RenderPass(rand.New(rand.NewSource(seed)))
	} else {
		fb, stats, err = raytracer.RenderParallel(ctx, renderer.ParallelConfig{
			TileSize:   cfg.TileSize,
			NumWorkers: cfg.Workers,
			Seed:       seed,
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info().
		Dur("duration", stats.Duration).
		Int("samples", stats.TotalSamples).
		Str("digest", fmt.Sprintf("%016x", fb.Digest())).
		Msg("render complete")

	return fb, nil
}

// writePNG encodes the framebuffer to path
func writePNG(fb *renderer.Framebuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.Image()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}

func listScenes() error {
	scenes, err := scene.ListScenes()
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Printf("%-12s %-8s %s\n", info.ID, info.Type, info.Description)
	}
	return nil
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kctx := kong.Parse(&CLI,
		kong.Name("raytracer"),
		kong.Description("a normals-shading ray tracer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if kctx.Command() == "config" {
		os.Stdout.Write(config.DEFAULT)
		return
	}
	if kctx.Command() == "scenes" {
		if err := listScenes(); err != nil {
			log.Fatal().Err(err).Msg("failed to list scenes")
		}
		return
	}

	cfg, err := loadConfig(CLI.Config, CLI.Overrides)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch kctx.Command() {
	case "serve":
		port := cfg.Server.Port
		if CLI.Serve.Port > 0 {
			port = CLI.Serve.Port
		}
		if err := server.NewServer(port, log.Logger).Start(); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}

	case "render":
		output := cfg.Output
		if CLI.Render.Output != "" {
			output = CLI.Render.Output
		}
		fb, err := renderFrame(ctx, cfg, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("render failed")
		}
		if err := writePNG(fb, output); err != nil {
			log.Fatal().Err(err).Msg("failed to save render")
		}
		log.Info().Str("path", output).Msg("render saved")

	case "show":
		fb, err := renderFrame(ctx, cfg, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("render failed")
		}
		if err := display.Show(fb, cfg.Window.Title); err != nil {
			log.Fatal().Err(err).Msg("failed to open window")
		}
	}
}
