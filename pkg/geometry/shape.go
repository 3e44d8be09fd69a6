package geometry

import "fmt"

// Intersection is the outcome of testing a ray against a single shape.
// The zero value means the ray missed.
type Intersection struct {
	Hit      bool    // Whether the ray touches the shape
	Distance float64 // Parameter t along the ray of the near root
}

// NoHit is the miss result
var NoHit = Intersection{}

// HitPolicy controls how intersections behind the ray origin are reported
type HitPolicy int

const (
	// KeepBehind reports the near root even when it lies behind the origin,
	// so a sphere behind the camera plane can win the nearest-hit comparison.
	KeepBehind HitPolicy = iota
	// CullBehind discards near roots with a negative distance. The far
	// root is never substituted, so rays starting inside a sphere miss it.
	CullBehind
)

// String returns the flag name of the policy
func (p HitPolicy) String() string {
	switch p {
	case KeepBehind:
		return "keep-behind"
	case CullBehind:
		return "cull-behind"
	default:
		return fmt.Sprintf("HitPolicy(%d)", int(p))
	}
}

// ParseHitPolicy converts a flag name into a HitPolicy
func ParseHitPolicy(name string) (HitPolicy, error) {
	switch name {
	case "", "keep-behind", "faithful":
		return KeepBehind, nil
	case "cull-behind", "corrected":
		return CullBehind, nil
	default:
		return KeepBehind, fmt.Errorf("unknown hit policy: %q", name)
	}
}
