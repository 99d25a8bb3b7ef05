package geometry

import (
	"github.com/openrender/pathtracer/pkg/core"
)

// Validator is implemented by objects that can report configuration errors
// before rendering begins
type Validator interface {
	Validate() error
}

// List is an ordered collection of hittables searched exhaustively.
// Order does not affect correctness, only performance.
type List struct {
	Objects []core.Hittable
}

// NewList creates a list from the given objects
func NewList(objects ...core.Hittable) *List {
	return &List{Objects: objects}
}

// Add appends an object to the list
func (l *List) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Hit tests every object and returns the hit with the smallest t.
// The upper bound shrinks as candidates are found; there is no other
// early termination.
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Validate checks every object that implements Validator
func (l *List) Validate() error {
	for _, object := range l.Objects {
		if validator, ok := object.(Validator); ok {
			if err := validator.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
