package core

import "math/rand"

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit tests the ray against the object within the parametric range
	// (tMin, tMax) and returns the nearest hit record, if any
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Material determines how a surface scatters incoming light
type Material interface {
	// Scatter returns the scattered ray and attenuation for an incoming
	// ray, or false if the ray is absorbed
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It is created per intersection test and consumed immediately.
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, oriented against the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray hit the front (outward) face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}
