// Package integrator evaluates the color carried by a camera ray through
// recursive light transport, restated as a bounded loop.
package integrator

import (
	"math"
	"math/rand"

	"github.com/openrender/pathtracer/pkg/core"
)

// tMinEpsilon keeps intersection search slightly above zero so scattered
// rays don't re-hit the surface they left (shadow acne)
const tMinEpsilon = 0.001

// Gradient is a sky background blended on the vertical component of the
// ray direction
type Gradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// Color returns the background color for a ray direction
func (g Gradient) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map direction y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}

// PathTracer computes ray colors by following scattered rays until
// absorption, escape, or depth exhaustion
type PathTracer struct {
	maxDepth   int
	background Gradient
}

// NewPathTracer creates a path tracer with the given bounce limit and
// background gradient
func NewPathTracer(maxDepth int, background Gradient) *PathTracer {
	return &PathTracer{maxDepth: maxDepth, background: background}
}

// MaxDepth returns the configured bounce limit
func (pt *PathTracer) MaxDepth() int {
	return pt.maxDepth
}

// RayColor returns the color for a ray traced through the world.
//
// The recursion is written as a loop carrying an accumulated attenuation
// product, so stack usage is constant regardless of the bounce limit. A ray
// that escapes returns the attenuated background; an absorbed ray or an
// exhausted depth budget returns black.
func (pt *PathTracer) RayColor(ray core.Ray, world core.Hittable, random *rand.Rand) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < pt.maxDepth; bounce++ {
		hit, isHit := world.Hit(ray, tMinEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted
	return core.Vec3{}
}
