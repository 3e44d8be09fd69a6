package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-raycaster/pkg/display"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Size limits for rendered frames
const (
	minSize = 1
	maxSize = 4096
)

// Server handles web requests for the ray caster preview
type Server struct {
	port    int
	console chan ConsoleMessage
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port:    port,
		console: make(chan ConsoleMessage, 256),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string               // Scene name (e.g., "default")
	Width   int                  // Image width
	Height  int                  // Image height
	Format  renderer.PixelFormat // Pixel layout of the frame
	Policy  geometry.HitPolicy   // Behind-origin hit handling
	Workers int                  // Render workers (0 = CPU count)
	Scale   int                  // PNG upscale factor
}

// Handler returns the HTTP handler with all API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleRender renders a frame and returns it as PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, frame, ok := s.renderFromRequest(w, r)
	if !ok {
		return
	}

	data, err := display.EncodePNG(frame, req.Scale)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleFrame renders a frame and returns the raw pixel buffer
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	_, frame, ok := s.renderFromRequest(w, r)
	if !ok {
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/octet-stream")
	h.Set("Content-Length", strconv.Itoa(len(frame.Pixels)))
	h.Set("X-Image-Width", strconv.Itoa(int(frame.Info.Width)))
	h.Set("X-Image-Height", strconv.Itoa(int(frame.Info.Height)))
	h.Set("X-Image-Channels", strconv.Itoa(int(frame.Info.Format.Channels)))
	h.Set("X-Image-Bytes-Per-Channel", strconv.Itoa(int(frame.Info.Format.BytesPerChannel)))
	w.WriteHeader(http.StatusOK)
	w.Write(frame.Pixels)
}

// renderFromRequest parses the request, renders the frame and writes an
// error response when anything fails
func (s *Server) renderFromRequest(w http.ResponseWriter, r *http.Request) (*RenderRequest, display.Frame, bool) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return nil, display.Frame{}, false
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, display.Frame{}, false
	}

	info, err := renderer.NewImageInfo(uint32(req.Width), uint32(req.Height), req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, display.Frame{}, false
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, s.console)
	config := renderer.RenderConfig{TileSize: 64, NumWorkers: req.Workers}

	pixels, _ := renderer.NewFrameRenderer(sceneObj, info, config, logger).Render()
	return req, display.Frame{Scene: sceneObj.Name, Info: info, Pixels: pixels}, true
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 640, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 480, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	if req.Scale, err = parseIntParam(query, "scale", 1, 1, 8); err != nil {
		return nil, err
	}

	req.Format = renderer.RGB8
	if name := query.Get("format"); name != "" {
		if req.Format, err = renderer.ParsePixelFormat(name); err != nil {
			return nil, err
		}
	}
	if req.Policy, err = geometry.ParseHitPolicy(query.Get("policy")); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 2048*2048 {
		log.Printf("Render warning: %dx%d frame may render slowly", req.Width, req.Height)
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

// createScene creates the requested scene with the request's hit policy
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		if errors.Is(err, scene.ErrUnknownScene) {
			return nil, fmt.Errorf("unknown scene: %s", req.Scene)
		}
		return nil, err
	}
	sceneObj.Policy = req.Policy
	return sceneObj, nil
}

// handleConsole returns and clears the buffered render log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	messages := []ConsoleMessage{}
drain:
	for {
		select {
		case msg := <-s.console:
			messages = append(messages, msg)
		default:
			break drain
		}
	}
	writeJSON(w, http.StatusOK, messages)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
