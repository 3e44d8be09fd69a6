package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// DefaultBackground is the dark blue returned for rays that miss every sphere
var DefaultBackground = core.NewVec3(0, 0, 0.1)

// Scene contains all the elements needed for rendering.
// A scene is built once and then only read, so a single value can be shared
// by every pixel evaluation and every render worker.
type Scene struct {
	Name       string
	Spheres    []geometry.Sphere // Objects in insertion order
	Background core.Vec3         // Color for rays that hit nothing
	Policy     geometry.HitPolicy
}

// Hit describes the winning intersection along a ray
type Hit struct {
	Index    int       // Index into Scene.Spheres
	Distance float64   // Signed distance along the ray direction
	Point    core.Vec3 // Intersection point
}

// NewScene creates a scene with the default background and hit policy
func NewScene(name string, spheres ...geometry.Sphere) *Scene {
	return &Scene{
		Name:       name,
		Spheres:    spheres,
		Background: DefaultBackground,
		Policy:     geometry.KeepBehind,
	}
}

// Add appends a sphere to the scene
func (s *Scene) Add(sphere geometry.Sphere) {
	s.Spheres = append(s.Spheres, sphere)
}

// Sphere returns the sphere a hit refers to
func (s *Scene) Sphere(hit Hit) geometry.Sphere {
	return s.Spheres[hit.Index]
}

// Nearest returns the hit with the smallest distance along the ray.
// Distances are compared signed, not by magnitude. On an exact tie the sphere
// inserted first wins.
func (s *Scene) Nearest(ray core.Ray) (Hit, bool) {
	var closest Hit
	hitAnything := false

	for i, sphere := range s.Spheres {
		isect := sphere.Intersect(ray, s.Policy)
		if !isect.Hit {
			continue
		}
		if !hitAnything || isect.Distance < closest.Distance {
			closest = Hit{Index: i, Distance: isect.Distance}
			hitAnything = true
		}
	}

	if !hitAnything {
		return Hit{}, false
	}

	closest.Point = ray.At(closest.Distance)
	return closest, true
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}
