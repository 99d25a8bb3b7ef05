package scene

import (
	"github.com/openrender/pathtracer/pkg/core"
	"github.com/openrender/pathtracer/pkg/geometry"
	"github.com/openrender/pathtracer/pkg/material"
	"github.com/openrender/pathtracer/pkg/renderer"
)

// NewDefaultScene creates the default scene: a diffuse, a metal, and a
// hollow glass sphere resting on a large ground sphere
func NewDefaultScene(aspectRatio float64) (*Scene, error) {
	camera, err := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          30,
		AspectRatio:   aspectRatio,
		Aperture:      0,
		FocusDistance: 0, // Focus on the look-at point
	})
	if err != nil {
		return nil, err
	}

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	centerBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)

	s := New(camera)
	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, centerBlue))
	// Hollow glass shell: the inner sphere's negative radius flips its
	// normal inward
	s.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass))
	s.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass))
	s.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold))

	return s, nil
}
