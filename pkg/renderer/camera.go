package renderer

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Camera maps pixels to device coordinates and generates parallel rays.
// Every ray looks down +Z; only the origin varies across the image plane.
type Camera struct {
	width       int
	height      int
	aspectRatio float64 // height / width
}

// ViewDirection is shared by every primary ray
var ViewDirection = core.NewVec3(0, 0, 1)

// NewCamera creates a camera for an image of the given size
func NewCamera(width, height int) *Camera {
	return &Camera{
		width:       width,
		height:      height,
		aspectRatio: float64(height) / float64(width),
	}
}

// DeviceCoords converts a pixel index to device coordinates.
// X spans [-1, 1). Y is scaled by height/width and X is not.
func (c *Camera) DeviceCoords(x, y int) (float64, float64) {
	deviceX := 2.0 * (float64(x)/float64(c.width) - 0.5)
	deviceY := 2.0 * c.aspectRatio * (float64(y)/float64(c.height) - 0.5)
	return deviceX, deviceY
}

// GetRay generates the ray for pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	return DeviceRay(c.DeviceCoords(x, y))
}

// DeviceRay generates the ray for device coordinates (x, y)
func DeviceRay(x, y float64) core.Ray {
	return core.NewRay(core.NewVec3(x, y, 0), ViewDirection)
}
