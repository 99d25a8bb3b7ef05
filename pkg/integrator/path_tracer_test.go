package integrator

import (
	"math/rand"
	"testing"

	"github.com/openrender/pathtracer/pkg/core"
)

// countingWorld reports a fixed hit and counts intersections.
type countingWorld struct {
	material core.Material
	hits     int
}

func (w *countingWorld) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	w.hits++
	hit := &core.HitRecord{
		Point:    ray.At(1.0),
		T:        1.0,
		Material: w.material,
	}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))
	return hit, true
}

// emptyWorld never intersects anything.
type emptyWorld struct{}

func (emptyWorld) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return nil, false
}

// bouncer scatters every ray upward with a fixed attenuation.
type bouncer struct {
	attenuation core.Vec3
}

func (b bouncer) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
		Attenuation: b.attenuation,
	}, true
}

// absorber swallows every ray.
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func testGradient() Gradient {
	return Gradient{
		Top:    core.NewVec3(0.1, 0.2, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

func TestGradient_Color(t *testing.T) {
	gradient := testGradient()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), gradient.Top},
		{"straight down", core.NewVec3(0, -1, 0), gradient.Bottom},
		{"horizontal", core.NewVec3(1, 0, 0), core.NewVec3(0.55, 0.6, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.Vec3{}, tt.direction)
			got := gradient.Color(ray)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGradient_Color_NormalizesDirection(t *testing.T) {
	gradient := testGradient()

	// Scaling the direction must not change the color
	short := gradient.Color(core.NewRay(core.Vec3{}, core.NewVec3(1, 1, 0)))
	long := gradient.Color(core.NewRay(core.Vec3{}, core.NewVec3(100, 100, 0)))
	if short.Subtract(long).Length() > 1e-9 {
		t.Errorf("Expected identical colors, got %v and %v", short, long)
	}
}

func TestPathTracer_RayColor_Escape(t *testing.T) {
	gradient := testGradient()
	tracer := NewPathTracer(50, gradient)
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	got := tracer.RayColor(ray, emptyWorld{}, random)
	if got.Subtract(gradient.Top).Length() > 1e-9 {
		t.Errorf("Expected background %v, got %v", gradient.Top, got)
	}
}

func TestPathTracer_RayColor_Absorption(t *testing.T) {
	world := &countingWorld{material: absorber{}}
	tracer := NewPathTracer(50, testGradient())
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	got := tracer.RayColor(ray, world, random)
	if got != (core.Vec3{}) {
		t.Errorf("Expected black for an absorbed ray, got %v", got)
	}
	if world.hits != 1 {
		t.Errorf("Expected exactly one intersection, got %d", world.hits)
	}
}

func TestPathTracer_RayColor_DepthExhaustion(t *testing.T) {
	world := &countingWorld{material: bouncer{attenuation: core.NewVec3(0.5, 0.5, 0.5)}}
	maxDepth := 10
	tracer := NewPathTracer(maxDepth, testGradient())
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	got := tracer.RayColor(ray, world, random)

	if got != (core.Vec3{}) {
		t.Errorf("Expected black at depth exhaustion, got %v", got)
	}
	if world.hits != maxDepth {
		t.Errorf("Expected %d intersections, got %d", maxDepth, world.hits)
	}
}

func TestPathTracer_RayColor_ZeroDepth(t *testing.T) {
	world := &countingWorld{material: bouncer{attenuation: core.NewVec3(1, 1, 1)}}
	tracer := NewPathTracer(0, testGradient())
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	got := tracer.RayColor(ray, world, random)

	if got != (core.Vec3{}) {
		t.Errorf("Expected black with zero depth budget, got %v", got)
	}
	if world.hits != 0 {
		t.Errorf("Expected no intersections with zero depth budget, got %d", world.hits)
	}
}

func TestPathTracer_RayColor_ThroughputAccumulation(t *testing.T) {
	attenuation := core.NewVec3(0.5, 0.4, 0.2)
	world := &singleHitWorld{material: bouncer{attenuation: attenuation}}
	gradient := testGradient()
	tracer := NewPathTracer(50, gradient)
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	got := tracer.RayColor(ray, world, random)

	// One bounce upward, then escape toward the gradient top
	expected := attenuation.MultiplyVec(gradient.Top)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// singleHitWorld intersects the first ray it sees and misses afterwards.
type singleHitWorld struct {
	material core.Material
	used     bool
}

func (w *singleHitWorld) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if w.used {
		return nil, false
	}
	w.used = true
	hit := &core.HitRecord{
		Point:    ray.At(1.0),
		T:        1.0,
		Material: w.material,
	}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))
	return hit, true
}

func TestPathTracer_RayColor_ThroughputProduct(t *testing.T) {
	// Two bounces of 0.5 attenuation compound to 0.25 before escape
	world := &limitedHitWorld{
		material:  bouncer{attenuation: core.NewVec3(0.5, 0.5, 0.5)},
		remaining: 2,
	}
	gradient := testGradient()
	tracer := NewPathTracer(50, gradient)
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	got := tracer.RayColor(ray, world, random)

	expected := gradient.Top.Multiply(0.25)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// limitedHitWorld intersects a fixed number of rays, then misses.
type limitedHitWorld struct {
	material  core.Material
	remaining int
}

func (w *limitedHitWorld) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if w.remaining <= 0 {
		return nil, false
	}
	w.remaining--
	hit := &core.HitRecord{
		Point:    ray.At(1.0),
		T:        1.0,
		Material: w.material,
	}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))
	return hit, true
}

func TestPathTracer_MaxDepth(t *testing.T) {
	tracer := NewPathTracer(25, testGradient())
	if tracer.MaxDepth() != 25 {
		t.Errorf("Expected max depth 25, got %d", tracer.MaxDepth())
	}
}
