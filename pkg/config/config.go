package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

// Config holds everything the CLI needs to render a frame
type Config struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	SamplesPerPixel int    `yaml:"samples_per_pixel"`
	SingleThreaded  bool   `yaml:"single_threaded"`
	Workers         int    `yaml:"workers"`
	TileSize        int    `yaml:"tile_size"`
	Seed            int64  `yaml:"seed"`
	Scene           string `yaml:"scene"`
	Output          string `yaml:"output"`

	Window WindowConfig `yaml:"window"`
	Server ServerConfig `yaml:"server"`
}

// WindowConfig configures the preview window
type WindowConfig struct {
	Title string `yaml:"title"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns the embedded default configuration
func Default() (*Config, error) {
	var config Config
	if err := apply(&config, DEFAULT); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}
	return &config, nil
}

// Process loads the defaults and layers each YAML file over them in order.
// Keys missing from a file keep their previous value. The result is not
// validated, so callers can apply overrides before calling Validate.
func Process(paths []string) (*Config, error) {
	config, err := Default()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := apply(config, data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return config, nil
}

func apply(config *Config, data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(config)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Validate rejects configurations the renderer cannot use
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples_per_pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("tile_size must not be negative, got %d", c.TileSize)
	}
	if c.Scene == "" {
		return fmt.Errorf("scene must be set")
	}
	return nil
}

// ResolvedSeed returns the configured seed, or a clock-derived one when the seed is 0
func (c *Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
