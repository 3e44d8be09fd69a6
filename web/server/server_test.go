package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raycaster/pkg/scene"
)

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, NewServer(0), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, NewServer(0), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var scenes []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(scenes) != len(scene.ListScenes()) {
		t.Fatalf("Expected %d scenes, got %d", len(scene.ListScenes()), len(scenes))
	}
	for _, info := range scenes {
		if info.ID == "default" && info.Spheres != 3 {
			t.Errorf("Expected 3 spheres in default scene, got %d", info.Spheres)
		}
	}
}

func TestHandleFrame(t *testing.T) {
	rec := get(t, NewServer(0), "/api/frame?width=640&height=480&format=rgb8&workers=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	pixels := rec.Body.Bytes()
	if len(pixels) != 921600 {
		t.Fatalf("Expected 921600 bytes, got %d", len(pixels))
	}

	headers := map[string]string{
		"X-Image-Width":             "640",
		"X-Image-Height":            "480",
		"X-Image-Channels":          "3",
		"X-Image-Bytes-Per-Channel": "1",
	}
	for key, expected := range headers {
		if got := rec.Header().Get(key); got != expected {
			t.Errorf("Header %s: expected %s, got %s", key, expected, got)
		}
	}

	// Pixel (384, 304) is the center of the blue sphere
	offset := 304*640*3 + 384*3
	if got := pixels[offset : offset+3]; !bytes.Equal(got, []byte{0, 0, 255}) {
		t.Errorf("Expected blue pixel, got %v", got)
	}
}

func TestHandleFrame_WideChannels(t *testing.T) {
	rec := get(t, NewServer(0), "/api/frame?width=4&height=3&format=rgba16")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Body.Len(); got != 4*3*8 {
		t.Errorf("Expected %d bytes, got %d", 4*3*8, got)
	}
	if got := rec.Header().Get("X-Image-Bytes-Per-Channel"); got != "2" {
		t.Errorf("Expected 2 bytes per channel, got %s", got)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	rec := get(t, NewServer(0), "/api/render?scene=single&width=64&height=48&scale=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	img, err := imaging.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 96 {
		t.Errorf("Expected 128x96 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderEndpoints_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero width", "width=0"},
		{"oversized height", "height=5000"},
		{"non-numeric width", "width=abc"},
		{"unknown format", "format=bgr8"},
		{"unknown scene", "scene=nope"},
		{"unknown policy", "policy=sideways"},
		{"negative workers", "workers=-1"},
	}

	for _, endpoint := range []string{"/api/render", "/api/frame"} {
		for _, tt := range tests {
			t.Run(endpoint+" "+tt.name, func(t *testing.T) {
				rec := get(t, NewServer(0), endpoint+"?"+tt.query)
				if rec.Code != http.StatusBadRequest {
					t.Errorf("Expected status 400, got %d", rec.Code)
				}
				if !strings.Contains(rec.Body.String(), "error") {
					t.Errorf("Expected error body, got %s", rec.Body.String())
				}
			})
		}
	}
}

func TestHandleConsole_DrainsRenderLogs(t *testing.T) {
	s := NewServer(0)
	if rec := get(t, s, "/api/frame?width=8&height=6"); rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	rec := get(t, s, "/api/console")
	var messages []ConsoleMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(messages) == 0 {
		t.Fatal("Expected render log messages")
	}
	if !strings.Contains(messages[0].Message, "8x6") {
		t.Errorf("Expected frame size in message, got %q", messages[0].Message)
	}

	// A second request finds the buffer empty
	rec = get(t, s, "/api/console")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Expected empty console, got %s", body)
	}
}
