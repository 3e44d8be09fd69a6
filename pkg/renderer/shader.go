package renderer

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Shader computes the color seen along a ray
type Shader struct {
	scene *scene.Scene
}

// NewShader creates a shader for a scene. The scene is only read.
func NewShader(s *scene.Scene) *Shader {
	return &Shader{scene: s}
}

// ShadePixel returns the clamped color for device coordinates (x, y)
func (sh *Shader) ShadePixel(x, y float64) core.Vec3 {
	return sh.ShadeRay(DeviceRay(x, y))
}

// ShadeRay returns the clamped color for a ray. The shade is the absolute
// cosine between the ray direction and the surface normal; for non-unit
// directions it is scaled by the direction length.
func (sh *Shader) ShadeRay(ray core.Ray) core.Vec3 {
	color, _ := sh.trace(ray)
	return color
}

// trace shades a ray and reports whether it hit a sphere
func (sh *Shader) trace(ray core.Ray) (core.Vec3, bool) {
	hit, ok := sh.scene.Nearest(ray)
	if !ok {
		return sh.scene.Background.Clamp01(), false
	}

	sphere := sh.scene.Sphere(hit)
	normal := sphere.Normal(hit.Point)
	shade := math.Abs(ray.Direction.Dot(normal))

	return sphere.Color.Multiply(shade).Clamp01(), true
}
