package scene

import (
	"math/rand"

	"github.com/openrender/pathtracer/pkg/core"
	"github.com/openrender/pathtracer/pkg/geometry"
	"github.com/openrender/pathtracer/pkg/material"
	"github.com/openrender/pathtracer/pkg/renderer"
)

// NewCoverScene creates a field of small random spheres around three large
// ones, with depth of field. The layout is deterministic for a given seed.
func NewCoverScene(aspectRatio float64, seed int64) (*Scene, error) {
	camera, err := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10,
	})
	if err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(seed))
	s := New(camera)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			// Keep the small spheres clear of the three large ones
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			s.Add(geometry.NewSphere(center, 0.2, randomMaterial(random)))
		}
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	s.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return s, nil
}

// randomMaterial picks a weighted random material for the small spheres
func randomMaterial(random *rand.Rand) core.Material {
	choice := random.Float64()
	switch {
	case choice < 0.8:
		// Diffuse with a darkened random albedo
		albedo := core.NewVec3(
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
		)
		return material.NewLambertian(albedo)
	case choice < 0.95:
		albedo := core.NewVec3(
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
		)
		return material.NewMetal(albedo, 0.5*random.Float64())
	default:
		return material.NewDielectric(1.5)
	}
}
