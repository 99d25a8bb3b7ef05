package renderer

import (
	"image"
	"math/rand"

	"github.com/openrender/pathtracer/pkg/core"
	"github.com/openrender/pathtracer/pkg/integrator"
)

// tileRenderer renders pixel bounds against an immutable world and camera.
// A single instance is shared by all workers; the per-tile random stream is
// the only mutable state and arrives with each task.
type tileRenderer struct {
	world      core.Hittable
	camera     *Camera
	integrator *integrator.PathTracer
	width      int
	height     int
}

// renderBounds takes samples for every pixel within bounds until each
// reaches targetSamples, and returns the number of samples taken. Pixel
// stats use global image coordinates; bounds from different tiles never
// overlap, so concurrent writes are disjoint.
func (tr *tileRenderer) renderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, targetSamples int) int {
	samplesTaken := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			for ps.SampleCount < targetSamples {
				// Normalized viewport coordinates with sub-pixel jitter;
				// film row 0 is the top of the image
				s := (float64(x) + random.Float64()) / float64(tr.width)
				t := (float64(tr.height-1-y) + random.Float64()) / float64(tr.height)

				ray := tr.camera.GetRay(s, t, random)
				ps.AddSample(tr.integrator.RayColor(ray, tr.world, random))
				samplesTaken++
			}
		}
	}

	return samplesTaken
}
