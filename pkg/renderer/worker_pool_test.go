package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid_CoversImageWithoutOverlap(t *testing.T) {
	width, height := 100, 70
	tiles := NewTileGrid(width, height, 32)

	// ceil(100/32) * ceil(70/32)
	if len(tiles) != 4*3 {
		t.Fatalf("Expected 12 tiles, got %d", len(tiles))
	}

	covered := make([]int, width*height)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
		}
		if !tile.Bounds.In(image.Rect(0, 0, width, height)) {
			t.Errorf("Tile %d bounds %v exceed image", tile.ID, tile.Bounds)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[y*width+x]++
			}
		}
	}

	for i, count := range covered {
		if count != 1 {
			t.Fatalf("Pixel (%d,%d) covered %d times", i%width, i/width, count)
		}
	}
}

func TestWorkerPool_RendersAllTasks(t *testing.T) {
	info := ImageInfo{Width: 40, Height: 30, Format: RGB8}
	fr := NewFrameRenderer(emptyScene(), info, DefaultRenderConfig(), nopLogger{})

	tiles := NewTileGrid(40, 30, 10)
	pixels := make([]byte, info.ByteSize())

	pool := NewWorkerPool(fr, len(tiles), 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Pixels: pixels})
	}

	seen := make(map[int]bool)
	total := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		seen[result.TaskID] = true
		total += result.Stats.TotalPixels
	}
	pool.Stop()

	if len(seen) != len(tiles) {
		t.Errorf("Expected %d distinct results, got %d", len(tiles), len(seen))
	}
	if total != 40*30 {
		t.Errorf("Expected %d pixels rendered, got %d", 40*30, total)
	}

	// Every pixel shows the background (0, 0, 25)
	for i := 0; i < len(pixels); i += 3 {
		if pixels[i] != 0 || pixels[i+1] != 0 || pixels[i+2] != 25 {
			t.Fatalf("Pixel %d: expected background, got %v", i/3, pixels[i:i+3])
		}
	}
}
