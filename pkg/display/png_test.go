package display

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raycaster/pkg/renderer"
)

func TestPNGSink_Present(t *testing.T) {
	dir := t.TempDir()
	logger := &captureLogger{}
	sink := NewPNGSink(dir, 2, logger)
	sink.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }

	if err := sink.Present(context.Background(), testFrame(renderer.RGB8)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectedPath := filepath.Join(dir, "default", "render_20240309_140506.png")
	if sink.LastPath() != expectedPath {
		t.Errorf("Expected path %s, got %s", expectedPath, sink.LastPath())
	}

	img, err := imaging.Open(expectedPath)
	if err != nil {
		t.Fatalf("Failed to open saved PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
		t.Errorf("Expected 16x12 image, got %v", img.Bounds())
	}
	if len(logger.lines) != 1 {
		t.Errorf("Expected one log line, got %d", len(logger.lines))
	}
}

func TestPNGSink_RejectsBadFrame(t *testing.T) {
	sink := NewPNGSink(t.TempDir(), 1, nil)
	frame := Frame{Info: renderer.ImageInfo{Width: 4, Height: 4, Format: renderer.RGB8}, Pixels: make([]byte, 3)}

	if err := sink.Present(context.Background(), frame); err == nil {
		t.Error("Expected error for truncated frame")
	}
	if sink.LastPath() != "" {
		t.Errorf("Expected no file written, got %s", sink.LastPath())
	}
}
