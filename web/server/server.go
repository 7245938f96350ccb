package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/df07/go-normals-raytracer/pkg/scene"
)

const (
	maxImageDimension = 2048
	maxSamples        = 100
	// maxRenderSamples caps width*height*samples for one render request
	maxRenderSamples = 1920 * 1080 * 16
)

// Server handles web requests for the raytracer
type Server struct {
	port   int
	logger zerolog.Logger
	cache  *renderCache
}

// NewServer creates a new web server
func NewServer(port int, logger zerolog.Logger) *Server {
	return &Server{
		port:   port,
		logger: logger,
		cache:  newRenderCache(defaultCacheEntries),
	}
}

// RenderRequest represents the parameters of a render or inspect request
type RenderRequest struct {
	Scene   string `json:"scene"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Samples int    `json:"samples"`
	Seed    int64  `json:"seed"`
}

// Handler returns the HTTP handler with all API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves the API until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info().Msgf("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list scenes")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// createScene resolves a scene ID from a request. Only IDs listed by
// /api/scenes are accepted; load failures are logged, not echoed.
func (s *Server) createScene(w http.ResponseWriter, id string) *scene.Scene {
	sceneObj, err := scene.CreateListed(id)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown scene: %q", id))
		return nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("scene", id).Msg("failed to load scene")
		writeError(w, http.StatusInternalServerError, "failed to load scene")
		return nil
	}
	return sceneObj
}

// parseRenderRequest parses the shared scene parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, maxImageDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 200, 1, maxImageDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, maxSamples); err != nil {
		return nil, err
	}

	req.Seed = 42
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %q", value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer query parameter within [min, max]
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, min, max, parsed)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
