package scene

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp01()
}

// Grid layout in device units; fits inside a 4:3 frame
const (
	gridColumns = 6
	gridRows    = 4
	gridSpacing = 0.3
)

// NewSphereGridScene creates a grid of spheres with hues varying across
// columns and chroma across rows. Depth alternates so neighbouring spheres
// sit at different distances.
func NewSphereGridScene() *Scene {
	s := NewScene("grid")

	radius := gridSpacing * 0.4
	left := -gridSpacing * float64(gridColumns-1) / 2
	top := -gridSpacing * float64(gridRows-1) / 2

	for j := 0; j < gridRows; j++ {
		for i := 0; i < gridColumns; i++ {
			center := core.NewVec3(
				left+float64(i)*gridSpacing,
				top+float64(j)*gridSpacing,
				3+float64((i+j)%3),
			)

			hue := float64(i) / float64(gridColumns) * 360.0
			chroma := 0.08 + float64(j)/float64(gridRows-1)*0.17
			lightness := 0.7 + 0.1*math.Sin(float64(i+j)*0.5)

			s.Add(geometry.NewSphere(center, radius, oklchToRGB(lightness, chroma, hue)))
		}
	}

	return s
}
