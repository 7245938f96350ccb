package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderStats_Merge(t *testing.T) {
	var total RenderStats
	total.Merge(RenderStats{TotalPixels: 4, TotalSamples: 40, Tiles: 1})
	total.Merge(RenderStats{TotalPixels: 4, TotalSamples: 8, Tiles: 1})

	assert.Equal(t, 8, total.TotalPixels)
	assert.Equal(t, 48, total.TotalSamples)
	assert.Equal(t, 2, total.Tiles)
	assert.Equal(t, 6.0, total.AverageSamples)
}

func TestRenderStats_MergeEmpty(t *testing.T) {
	var total RenderStats
	total.Merge(RenderStats{})
	assert.Zero(t, total.AverageSamples)
}
