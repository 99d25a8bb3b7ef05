// Package server exposes the renderer behind HTTP endpoints: a one-shot
// endpoint returning encoded PNG bytes and a progressive endpoint
// streaming passes over SSE.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/openrender/pathtracer/pkg/renderer"
	"github.com/openrender/pathtracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene name (e.g., "default")
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Samples int    `json:"samples"` // Samples per pixel
	Depth   int    `json:"depth"`   // Maximum bounce depth
	Passes  int    `json:"passes"`  // Progressive passes
	Seed    int64  `json:"seed"`    // Base random seed
}

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
}

// Handler returns the HTTP handler for the server's API endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/progressive", s.handleRenderProgressive)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRender performs a one-shot render and responds with PNG bytes
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := createScene(req.Scene, float64(req.Width)/float64(req.Height), req.Seed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rend, err := renderer.NewRenderer(sceneObj, renderer.Config{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Seed:            req.Seed,
	}, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Client disconnection cancels the render wholesale
	film, _, err := rend.Render(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, film.RGBA()); err != nil {
		log.Printf("Failed to write PNG response: %v", err)
	}
}

// handleRenderProgressive streams progressive passes via SSE
func (s *Server) handleRenderProgressive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := createScene(req.Scene, float64(req.Width)/float64(req.Height), req.Seed)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	progressive, err := renderer.NewProgressiveRenderer(sceneObj, renderer.ProgressiveConfig{
		Config: renderer.Config{
			Width:           req.Width,
			Height:          req.Height,
			SamplesPerPixel: req.Samples,
			MaxDepth:        req.Depth,
			Seed:            req.Seed,
		},
		InitialSamples: 1,
		MaxPasses:      req.Passes,
	}, nil)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	startTime := time.Now()
	passChan, errChan := progressive.RenderProgressive(r.Context())

	for result := range passChan {
		imageData, err := s.imageToBase64PNG(result)
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
			return
		}

		update := ProgressUpdate{
			PassNumber:  result.PassNumber,
			TotalPasses: req.Passes,
			ImageData:   imageData,
			Stats: Stats{
				TotalPixels:    result.Stats.TotalPixels,
				TotalSamples:   int64(result.Stats.TotalSamples),
				AverageSamples: result.Stats.AverageSamples,
				MinSamples:     result.Stats.MinSamples,
				MaxSamplesUsed: result.Stats.MaxSamplesUsed,
			},
			IsComplete: result.IsLast,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		}

		if err := s.sendSSEUpdate(w, update); err != nil {
			return
		}
	}

	if err := <-errChan; err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// imageToBase64PNG encodes a pass result's film as a base64 PNG string
func (s *Server) imageToBase64PNG(result renderer.PassResult) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, result.Film.RGBA()); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a progress update as an SSE data event
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update ProgressUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// sendSSEEvent sends a named SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// sendSSEError sends an error as an SSE event
func (s *Server) sendSSEError(w http.ResponseWriter, message string) {
	s.sendSSEEvent(w, "error", message)
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if sceneName := r.URL.Query().Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", 225, 16, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(r.URL.Query(), "samples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(r.URL.Query(), "depth", 50, 1, 1000); err != nil {
		return nil, err
	}
	if req.Passes, err = parseIntParam(r.URL.Query(), "passes", 7, 1, 100); err != nil {
		return nil, err
	}

	seed, err := parseIntParam(r.URL.Query(), "seed", 42, 1, 1<<30)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates a scene based on the scene name
func createScene(sceneName string, aspectRatio float64, seed int64) (*scene.Scene, error) {
	switch sceneName {
	case "default":
		return scene.NewDefaultScene(aspectRatio)
	case "cover":
		return scene.NewCoverScene(aspectRatio, seed)
	default:
		return nil, fmt.Errorf("unknown scene: %s", sceneName)
	}
}
