package renderer

import (
	"fmt"
	"image"
	"log"
	"runtime"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// DefaultLogger implements core.Logger with the standard logger
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for frame rendering
type RenderConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count, 1 = render inline)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 1,
	}
}

// FrameRenderer turns a scene into a pixel buffer
type FrameRenderer struct {
	scene  *scene.Scene
	info   ImageInfo
	config RenderConfig
	shader *Shader
	camera *Camera
	factor float64
	logger core.Logger
}

// NewFrameRenderer creates a frame renderer. The info must describe a
// supported format (see ImageInfo.Validate via NewImageInfo).
func NewFrameRenderer(s *scene.Scene, info ImageInfo, config RenderConfig, logger core.Logger) *FrameRenderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &FrameRenderer{
		scene:  s,
		info:   info,
		config: config,
		shader: NewShader(s),
		camera: NewCamera(int(info.Width), int(info.Height)),
		factor: QuantizationFactor(info.Format),
		logger: logger,
	}
}

// RenderFrame renders the default scene on the calling goroutine
func RenderFrame(width, height uint32, format PixelFormat) []byte {
	info := ImageInfo{Width: width, Height: height, Format: format}
	fr := NewFrameRenderer(scene.NewDefaultScene(), info, DefaultRenderConfig(), nopLogger{})
	pixels, _ := fr.Render()
	return pixels
}

// Render produces the full pixel buffer, rows top to bottom and pixels left
// to right. A buffer whose length differs from ImageInfo.ByteSize is a defect
// in the size mapping and panics.
func (fr *FrameRenderer) Render() ([]byte, RenderStats) {
	startTime := time.Now()
	width, height := int(fr.info.Width), int(fr.info.Height)
	pixels := make([]byte, fr.info.ByteSize())

	var stats RenderStats
	if fr.config.NumWorkers == 1 {
		stats = fr.RenderBounds(image.Rect(0, 0, width, height), pixels)
		stats.Tiles = 1
		stats.Workers = 1
	} else {
		stats = fr.renderParallel(pixels)
	}
	stats.Duration = time.Since(startTime)

	if stats.BytesWritten != len(pixels) || len(pixels) != fr.info.ByteSize() {
		panic(fmt.Sprintf("renderer: wrote %d bytes into %d byte buffer, expected %d",
			stats.BytesWritten, len(pixels), fr.info.ByteSize()))
	}

	fr.logger.Printf("Rendered %dx%d %s frame of %q in %v (%d hits, %d workers)\n",
		width, height, fr.info.Format, fr.scene.Name, stats.Duration, stats.HitPixels, stats.Workers)

	return pixels, stats
}

// renderParallel splits the frame into tiles and renders them on a worker pool
func (fr *FrameRenderer) renderParallel(pixels []byte) RenderStats {
	tiles := NewTileGrid(int(fr.info.Width), int(fr.info.Height), fr.config.TileSize)

	pool := NewWorkerPool(fr, len(tiles), fr.config.NumWorkers)
	pool.Start()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Pixels: pixels})
	}

	stats := RenderStats{Tiles: len(tiles), Workers: pool.GetNumWorkers()}
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()

	return stats
}

// RenderBounds renders the pixels inside bounds into the shared buffer.
// Each pixel owns a disjoint byte range, so bounds that do not overlap can be
// rendered concurrently.
func (fr *FrameRenderer) RenderBounds(bounds image.Rectangle, pixels []byte) RenderStats {
	stats := RenderStats{}
	bytesPerPixel := fr.info.Format.BytesPerPixel()
	stride := fr.info.Stride()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, hit := fr.shader.trace(fr.camera.GetRay(x, y))

			offset := y*stride + x*bytesPerPixel
			stats.BytesWritten += fr.writePixel(pixels[offset:offset+bytesPerPixel], color)
			stats.TotalPixels++
			if hit {
				stats.HitPixels++
			} else {
				stats.MissPixels++
			}
		}
	}

	return stats
}

// writePixel quantizes a color into dst and returns the number of bytes written
func (fr *FrameRenderer) writePixel(dst []byte, color core.Vec3) int {
	n := fr.info.Format.BytesPerChannel
	written := 0

	for _, v := range [3]float64{color.X, color.Y, color.Z} {
		written += putChannel(dst[written:], Quantize(v, fr.factor), n)
	}
	if fr.info.Format.HasAlpha() {
		written += putChannel(dst[written:], uint64(fr.factor), n)
	}

	return written
}

// putChannel writes the low n bytes of value in big-endian order
func putChannel(dst []byte, value uint64, n uint8) int {
	for i := int(n) - 1; i >= 0; i-- {
		dst[i] = byte(value)
		value >>= 8
	}
	return int(n)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
