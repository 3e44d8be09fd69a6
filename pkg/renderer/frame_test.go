package renderer

import (
	"bytes"
	"testing"

	"github.com/df07/go-raycaster/pkg/scene"
)

func pixelAt(pixels []byte, info ImageInfo, x, y int) []byte {
	bpp := info.Format.BytesPerPixel()
	offset := y*info.Stride() + x*bpp
	return pixels[offset : offset+bpp]
}

func TestRenderFrame_BufferSize(t *testing.T) {
	pixels := RenderFrame(640, 480, RGB8)
	if len(pixels) != 921600 {
		t.Errorf("Expected 921600 bytes, got %d", len(pixels))
	}
}

func TestRenderFrame_BufferSizeAllFormats(t *testing.T) {
	for _, format := range []PixelFormat{RGB8, RGBA8, RGB16, RGBA16} {
		t.Run(format.String(), func(t *testing.T) {
			info := ImageInfo{Width: 32, Height: 24, Format: format}
			pixels := RenderFrame(info.Width, info.Height, format)
			if len(pixels) != info.ByteSize() {
				t.Errorf("Expected %d bytes, got %d", info.ByteSize(), len(pixels))
			}
		})
	}
}

func TestRenderFrame_Pixels(t *testing.T) {
	info := ImageInfo{Width: 640, Height: 480, Format: RGB8}
	pixels := RenderFrame(info.Width, info.Height, info.Format)

	tests := []struct {
		name     string
		x, y     int
		expected []byte
	}{
		// Device (-1, -0.75) misses everything; 0.1*255 truncates to 25
		{"background", 0, 0, []byte{0, 0, 25}},
		// Device (0.2, 0.2) is the blue sphere center
		{"blue sphere", 384, 304, []byte{0, 0, 255}},
		// Device (0.3, 0) is the green sphere center
		{"green sphere", 416, 240, []byte{0, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelAt(pixels, info, tt.x, tt.y)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
			}
		})
	}
}

// Every byte of the frame must equal the quantized shader output for the
// pixel's device coordinates, in row-major order.
func TestFrameRenderer_MatchesShader(t *testing.T) {
	s := scene.NewDefaultScene()
	info := ImageInfo{Width: 80, Height: 60, Format: RGB8}
	fr := NewFrameRenderer(s, info, DefaultRenderConfig(), nopLogger{})
	pixels, _ := fr.Render()

	shader := NewShader(s)
	camera := NewCamera(80, 60)
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			color := shader.ShadePixel(camera.DeviceCoords(x, y))
			expected := []byte{
				byte(Quantize(color.X, 255)),
				byte(Quantize(color.Y, 255)),
				byte(Quantize(color.Z, 255)),
			}
			if got := pixelAt(pixels, info, x, y); !bytes.Equal(got, expected) {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}

func TestFrameRenderer_AlphaAndWideChannels(t *testing.T) {
	tests := []struct {
		name     string
		format   PixelFormat
		expected []byte
	}{
		{"rgba8 background", RGBA8, []byte{0, 0, 25, 255}},
		// 0.1*65535 truncates to 6553 = 0x1999, written big-endian
		{"rgb16 background", RGB16, []byte{0, 0, 0, 0, 0x19, 0x99}},
		{"rgba16 background", RGBA16, []byte{0, 0, 0, 0, 0x19, 0x99, 0xff, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ImageInfo{Width: 16, Height: 12, Format: tt.format}
			fr := NewFrameRenderer(scene.NewDefaultScene(), info, DefaultRenderConfig(), nopLogger{})
			pixels, _ := fr.Render()

			if got := pixelAt(pixels, info, 0, 0); !bytes.Equal(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFrameRenderer_ParallelMatchesSequential(t *testing.T) {
	s := scene.NewDefaultScene()
	info := ImageInfo{Width: 97, Height: 61, Format: RGBA8}

	sequential, seqStats := NewFrameRenderer(s, info, RenderConfig{TileSize: 16, NumWorkers: 1}, nopLogger{}).Render()

	for _, workers := range []int{2, 4, 7} {
		parallel, parStats := NewFrameRenderer(s, info, RenderConfig{TileSize: 16, NumWorkers: workers}, nopLogger{}).Render()
		if !bytes.Equal(sequential, parallel) {
			t.Errorf("%d workers: frame differs from sequential render", workers)
		}
		if parStats.HitPixels != seqStats.HitPixels {
			t.Errorf("%d workers: expected %d hit pixels, got %d", workers, seqStats.HitPixels, parStats.HitPixels)
		}
		if parStats.Workers != workers {
			t.Errorf("Expected %d workers in stats, got %d", workers, parStats.Workers)
		}
		// ceil(97/16) * ceil(61/16) tiles
		if parStats.Tiles != 7*4 {
			t.Errorf("Expected 28 tiles, got %d", parStats.Tiles)
		}
	}
}

func TestFrameRenderer_Stats(t *testing.T) {
	info := ImageInfo{Width: 64, Height: 48, Format: RGB8}
	fr := NewFrameRenderer(scene.NewDefaultScene(), info, DefaultRenderConfig(), nopLogger{})
	pixels, stats := fr.Render()

	if stats.TotalPixels != 64*48 {
		t.Errorf("Expected %d pixels, got %d", 64*48, stats.TotalPixels)
	}
	if stats.HitPixels+stats.MissPixels != stats.TotalPixels {
		t.Errorf("Hits %d + misses %d != total %d", stats.HitPixels, stats.MissPixels, stats.TotalPixels)
	}
	if stats.HitPixels == 0 || stats.MissPixels == 0 {
		t.Errorf("Expected both hits and misses, got %d hits and %d misses", stats.HitPixels, stats.MissPixels)
	}
	if stats.BytesWritten != len(pixels) {
		t.Errorf("Expected %d bytes written, got %d", len(pixels), stats.BytesWritten)
	}
}

func TestFrameRenderer_Deterministic(t *testing.T) {
	a := RenderFrame(50, 40, RGB8)
	b := RenderFrame(50, 40, RGB8)
	if !bytes.Equal(a, b) {
		t.Error("Expected identical frames from identical inputs")
	}
}

func TestPutChannel(t *testing.T) {
	dst := make([]byte, 2)
	if n := putChannel(dst, 0xabcd, 2); n != 2 {
		t.Errorf("Expected 2 bytes written, got %d", n)
	}
	if dst[0] != 0xab || dst[1] != 0xcd {
		t.Errorf("Expected big-endian [ab cd], got %x", dst)
	}
}
