package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Sphere represents a colored sphere. Spheres are values and are not
// modified after construction.
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3 // RGB in [0,1]
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, color core.Vec3) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

// Intersect tests if a ray intersects with the sphere and returns the near root.
// The direction is used as-is in the quadratic, so for non-unit directions the
// distance is only meaningful relative to that same direction vector.
func (s Sphere) Intersect(ray core.Ray, policy HitPolicy) Intersection {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	b := ray.Direction.Dot(oc)
	discriminant := b*b - (oc.LengthSquared() - s.Radius*s.Radius)

	// No intersection if discriminant is negative
	if discriminant < 0 {
		return NoHit
	}

	// Only the near root is considered
	d := -b - math.Sqrt(discriminant)
	if policy == CullBehind && d < 0 {
		return NoHit
	}

	return Intersection{Hit: true, Distance: d}
}

// Normal returns the unit surface normal at point. The point must not
// coincide with the center.
func (s Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
