package renderer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/openrender/pathtracer/pkg/core"
)

// CameraConfig describes a camera placement and lens
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // World up vector (typically 0,1,0)
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width/height ratio of the image
	Aperture      float64   // Lens diameter (0 disables defocus blur)
	FocusDistance float64   // Distance to the plane in focus (0 = distance to LookAt)
}

// Validate reports configuration errors for the camera
func (c CameraConfig) Validate() error {
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("camera vertical fov must be in (0, 180), got %g", c.VFov)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("camera aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("camera aperture must be non-negative, got %g", c.Aperture)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("camera focus distance must be non-negative, got %g", c.FocusDistance)
	}
	if c.LookFrom.Subtract(c.LookAt).NearZero() {
		return fmt.Errorf("camera look-from and look-at coincide at %v", c.LookFrom)
	}
	return nil
}

// Camera maps normalized viewport coordinates to primary rays.
// It is immutable after construction and safe to share across workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		// Focus on the look-at point
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	// Viewport height from the vertical field of view
	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2.0 * halfHeight
	viewportWidth := viewportHeight * config.AspectRatio

	// Orthonormal basis: w points away from the look-at direction
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2.0,
	}, nil
}

// GetRay generates a ray through viewport coordinates (s, t) where
// 0 <= s,t <= 1. Sub-pixel jitter is applied by the caller. When the
// aperture is open, the origin is offset by a random point on the lens and
// the ray aims at the corresponding point on the focus plane.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	var offset core.Vec3

	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offset)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(origin, direction)
}
