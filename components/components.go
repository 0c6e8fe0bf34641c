// Package components defines ECS components for vesicles.
package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Position is a vesicle's current center.
type Position struct {
	Center r2.Vec
}

// Perimeter holds the ring of sample points that travels with the vesicle.
type Perimeter struct {
	Samples []r2.Vec
}

// Body holds per-vesicle simulation constants, fixed at creation.
type Body struct {
	Radius    float64
	Diffusion float64 // D
	DT        float64 // seconds per tick
}

// StepScale returns sqrt(2*D*dt), the standard deviation of one displacement component.
func (b Body) StepScale() float64 {
	return math.Sqrt(2 * b.Diffusion * b.DT)
}

// Footprint is the sorted set of triangle indices the vesicle claims.
// Only written with the result of an accepted mesh.Tracker.Resolve.
type Footprint struct {
	Triangles []int
}

// Origin records where the vesicle was placed, for displacement statistics.
type Origin struct {
	Start r2.Vec
}
