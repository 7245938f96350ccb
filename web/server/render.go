package server

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/sasha-s/go-deadlock"

	"github.com/df07/go-normals-raytracer/pkg/renderer"
)

const defaultCacheEntries = 32

// renderCache keeps recently encoded PNGs keyed by request hash
type renderCache struct {
	mutex      deadlock.RWMutex
	entries    map[uint64][]byte
	order      []uint64
	maxEntries int
}

func newRenderCache(maxEntries int) *renderCache {
	return &renderCache{
		entries:    make(map[uint64][]byte),
		maxEntries: maxEntries,
	}
}

func (c *renderCache) get(key uint64) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *renderCache) put(key uint64, data []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}

	// Evict the oldest entry once full
	if len(c.order) >= c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = data
	c.order = append(c.order, key)
}

func (c *renderCache) len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// cacheKey hashes the normalized request so equal renders share an entry
func (req *RenderRequest) cacheKey() uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%s|%d|%d|%d|%d", req.Scene, req.Width, req.Height, req.Samples, req.Seed))
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if total := req.Width * req.Height * req.Samples; total > maxRenderSamples {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %d samples exceeds the limit of %d", total, maxRenderSamples))
		return
	}

	logger := s.logger.With().Str("scene", req.Scene).Int("width", req.Width).Int("height", req.Height).Logger()

	key := req.cacheKey()
	if data, ok := s.cache.get(key); ok {
		logger.Debug().Msg("serving cached render")
		writePNG(w, data, true)
		return
	}

	sceneObj := s.createScene(w, req.Scene)
	if sceneObj == nil {
		return
	}

	raytracer := renderer.NewRaytracer(sceneObj, req.Width, req.Height, logger)
	raytracer.SetSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: req.Samples})

	config := renderer.DefaultParallelConfig()
	config.Seed = req.Seed

	// The request context stops the render when the client disconnects
	fb, _, err := raytracer.RenderParallel(r.Context(), config)
	if err != nil {
		logger.Warn().Err(err).Msg("render aborted")
		writeError(w, http.StatusServiceUnavailable, "render aborted: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.Image()); err != nil {
		logger.Error().Err(err).Msg("failed to encode PNG")
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	data := buf.Bytes()
	s.cache.put(key, data)
	writePNG(w, data, false)
}

func writePNG(w http.ResponseWriter, data []byte, cached bool) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Cache", map[bool]string{true: "hit", false: "miss"}[cached])
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
