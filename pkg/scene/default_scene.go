package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

var (
	Red   = core.NewVec3(1, 0, 0)
	Green = core.NewVec3(0, 1, 0)
	Blue  = core.NewVec3(0, 0, 1)
)

// NewDefaultScene creates the three-sphere scene: a large green sphere in the
// back, a small blue sphere closest to the camera and a red one in between.
func NewDefaultScene() *Scene {
	return NewScene("default",
		geometry.NewSphere(core.NewVec3(0.3, 0, 5), 0.5, Green),
		geometry.NewSphere(core.NewVec3(0.2, 0.2, 3), 0.2, Blue),
		geometry.NewSphere(core.NewVec3(-0.2, 0, 4), 0.3, Red),
	)
}

// NewSingleSphereScene creates a scene with one red sphere
func NewSingleSphereScene() *Scene {
	return NewScene("single",
		geometry.NewSphere(core.NewVec3(0.3, 0, 5), 0.5, Red),
	)
}
