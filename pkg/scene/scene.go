// Package scene assembles cameras, objects, and backgrounds into
// renderable scenes.
package scene

import (
	"fmt"

	"github.com/openrender/pathtracer/pkg/core"
	"github.com/openrender/pathtracer/pkg/geometry"
	"github.com/openrender/pathtracer/pkg/renderer"
)

// Default sky gradient: warm white at the horizon blending to blue overhead
var (
	DefaultBackgroundTop    = core.NewVec3(0.1, 0.2, 0.65)
	DefaultBackgroundBottom = core.NewVec3(0.8, 0.8, 0.8)
)

// Scene contains all the elements needed for rendering. It is built once
// before rendering and read-only during a render, so it may be shared
// across workers without locking.
type Scene struct {
	Camera           *renderer.Camera
	World            *geometry.List
	BackgroundTop    core.Vec3
	BackgroundBottom core.Vec3
}

// New creates an empty scene with the given camera and the default
// background gradient
func New(camera *renderer.Camera) *Scene {
	return &Scene{
		Camera:           camera,
		World:            geometry.NewList(),
		BackgroundTop:    DefaultBackgroundTop,
		BackgroundBottom: DefaultBackgroundBottom,
	}
}

// Add appends an object to the scene
func (s *Scene) Add(object core.Hittable) {
	s.World.Add(object)
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the scene's object aggregate
func (s *Scene) GetWorld() core.Hittable {
	return s.World
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (top, bottom core.Vec3) {
	return s.BackgroundTop, s.BackgroundBottom
}

// Validate reports scene configuration errors before rendering begins
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}
	return s.World.Validate()
}
