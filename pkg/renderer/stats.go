package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	HitPixels    int           // Pixels whose ray hit a sphere
	MissPixels   int           // Pixels that show the background
	BytesWritten int           // Bytes written into the frame buffer
	Tiles        int           // Number of tiles the frame was split into
	Workers      int           // Number of workers that rendered the frame
	Duration     time.Duration // Wall time of the render
}

// Merge adds the pixel counters of another tile into these stats
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.MissPixels += other.MissPixels
	s.BytesWritten += other.BytesWritten
}

// Coverage returns the fraction of pixels that hit a sphere
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
