package display

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raycaster/pkg/core"
)

// PNGSink saves frames as PNG files under Dir/<scene>/render_<timestamp>.png
type PNGSink struct {
	Dir    string      // Output root directory
	Scale  int         // Integer upscale factor (<= 1 keeps the original size)
	Logger core.Logger // Optional

	now      func() time.Time
	lastPath string
}

// NewPNGSink creates a PNG sink writing below dir
func NewPNGSink(dir string, scale int, logger core.Logger) *PNGSink {
	return &PNGSink{
		Dir:    dir,
		Scale:  scale,
		Logger: logger,
		now:    time.Now,
	}
}

// Present writes the frame to a new timestamped file
func (p *PNGSink) Present(ctx context.Context, frame Frame) error {
	img, err := ToImage(frame)
	if err != nil {
		return err
	}

	sceneName := frame.Scene
	if sceneName == "" {
		sceneName = "default"
	}
	outputDir := filepath.Join(p.Dir, sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	now := p.now
	if now == nil {
		now = time.Now
	}
	timestamp := now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	if err := imaging.Save(Scale(img, p.Scale), filename); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}

	p.lastPath = filename
	if p.Logger != nil {
		p.Logger.Printf("Render saved as %s\n", filename)
	}
	return nil
}

// LastPath returns the file written by the most recent Present call
func (p *PNGSink) LastPath() string {
	return p.lastPath
}
