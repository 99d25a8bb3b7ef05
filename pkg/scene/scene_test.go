package scene

import (
	"testing"

	"github.com/openrender/pathtracer/pkg/core"
	"github.com/openrender/pathtracer/pkg/geometry"
	"github.com/openrender/pathtracer/pkg/material"
	"github.com/openrender/pathtracer/pkg/renderer"
)

func testCamera(t *testing.T) *renderer.Camera {
	t.Helper()
	camera, err := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	})
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	return camera
}

func TestScene_New(t *testing.T) {
	camera := testCamera(t)
	s := New(camera)

	if s.GetCamera() != camera {
		t.Error("Expected the scene to hold the given camera")
	}
	top, bottom := s.GetBackgroundColors()
	if top != DefaultBackgroundTop || bottom != DefaultBackgroundBottom {
		t.Errorf("Expected default background, got top %v bottom %v", top, bottom)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected empty scene to validate, got %v", err)
	}
}

func TestScene_Add(t *testing.T) {
	s := New(testCamera(t))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := s.GetWorld().Hit(ray, 0.001, 1000.0); !isHit {
		t.Error("Expected added sphere to be hittable through the world")
	}
}

func TestScene_Validate(t *testing.T) {
	noCamera := &Scene{World: geometry.NewList()}
	if err := noCamera.Validate(); err == nil {
		t.Error("Expected error for a scene without a camera")
	}

	badGeometry := New(testCamera(t))
	badGeometry.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	if err := badGeometry.Validate(); err == nil {
		t.Error("Expected error for a scene with a degenerate sphere")
	}
}

func TestNewDefaultScene(t *testing.T) {
	s, err := NewDefaultScene(16.0 / 9.0)
	if err != nil {
		t.Fatalf("NewDefaultScene failed: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected default scene to validate, got %v", err)
	}
	if len(s.World.Objects) != 5 {
		t.Errorf("Expected 5 objects (ground, diffuse, glass shell pair, metal), got %d",
			len(s.World.Objects))
	}

	// The glass sphere sits to the camera's side of the diffuse one
	ray := core.NewRay(core.NewVec3(-1, 0, 1), core.NewVec3(0, 0, -1))
	hit, isHit := s.GetWorld().Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected a ray toward the glass sphere to hit")
	}
	if hit.Point.Z < -1 {
		t.Errorf("Expected the hit on the near side of the sphere, got %v", hit.Point)
	}
}

func TestNewCoverScene(t *testing.T) {
	s, err := NewCoverScene(3.0/2.0, 42)
	if err != nil {
		t.Fatalf("NewCoverScene failed: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected cover scene to validate, got %v", err)
	}

	// Ground, three large spheres, and most of the 22x22 small ones
	if n := len(s.World.Objects); n < 400 {
		t.Errorf("Expected a dense field of spheres, got %d objects", n)
	}
}

func TestNewCoverScene_Deterministic(t *testing.T) {
	first, err := NewCoverScene(3.0/2.0, 7)
	if err != nil {
		t.Fatalf("NewCoverScene failed: %v", err)
	}
	second, err := NewCoverScene(3.0/2.0, 7)
	if err != nil {
		t.Fatalf("NewCoverScene failed: %v", err)
	}

	if len(first.World.Objects) != len(second.World.Objects) {
		t.Fatalf("Expected identical layouts for the same seed, got %d and %d objects",
			len(first.World.Objects), len(second.World.Objects))
	}
	for i, object := range first.World.Objects {
		a := object.(*geometry.Sphere)
		b := second.World.Objects[i].(*geometry.Sphere)
		if a.Center != b.Center || a.Radius != b.Radius {
			t.Fatalf("Sphere %d differs between runs", i)
		}
	}
}

func TestNewDefaultScene_BadAspect(t *testing.T) {
	if _, err := NewDefaultScene(0); err == nil {
		t.Error("Expected error for a zero aspect ratio")
	}
}
