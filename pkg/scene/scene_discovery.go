package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Spheres     int    `json:"spheres"`     // Number of spheres
}

type builtin struct {
	info    SceneInfo
	factory func() *Scene
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Three Spheres",
			Description: "Green, blue and red spheres at different depths",
		},
		factory: NewDefaultScene,
	},
	"single": {
		info: SceneInfo{
			ID:          "single",
			DisplayName: "Single Sphere",
			Description: "One red sphere to the right of the view axis",
		},
		factory: NewSingleSphereScene,
	},
	"grid": {
		info: SceneInfo{
			ID:          "grid",
			DisplayName: "Sphere Grid",
			Description: "A 6x4 grid of colored spheres at alternating depths",
		},
		factory: NewSphereGridScene,
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Spheres = b.factory().GetPrimitiveCount()
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})

	return scenes
}

// Create builds a fresh instance of the named scene
func Create(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.factory(), nil
}
