package renderer

import (
	"context"
	"time"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 64

// ParallelConfig contains configuration for multi-worker rendering
type ParallelConfig struct {
	TileSize   int   // Size of each tile
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile i uses Seed+i
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,
		Seed:       42,
	}
}

// RenderParallel renders the image as tiles spread over a worker pool. The
// result for a given seed and tile size does not depend on the worker count.
func (rt *Raytracer) RenderParallel(ctx context.Context, config ParallelConfig) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	width, height := rt.Size()
	fb := NewFramebuffer(width, height)
	tiles := NewTileGrid(width, height, config.TileSize, config.Seed)

	workerPool := NewWorkerPool(rt, len(tiles), config.NumWorkers)

	rt.logger.Info().
		Int("width", width).
		Int("height", height).
		Int("samples", rt.GetSamplingConfig().SamplesPerPixel).
		Int("tiles", len(tiles)).
		Int("workers", workerPool.GetNumWorkers()).
		Msg("starting render")

	workerPool.Start(ctx)
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:        tile,
			TaskID:      taskID,
			Framebuffer: fb,
		})
	}
	workerPool.Stop()

	var stats RenderStats
	var renderErr error
	for {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	stats.Duration = time.Since(start)

	if renderErr != nil {
		rt.logger.Warn().Err(renderErr).Int("tiles_done", stats.Tiles).Msg("render interrupted")
		return nil, stats, renderErr
	}

	rt.logger.Debug().
		Dur("elapsed", stats.Duration).
		Float64("avg_samples", stats.AverageSamples).
		Msg("all tiles complete")

	return fb, stats, nil
}
