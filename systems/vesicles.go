// Package systems places vesicles on the membrane mesh and advances them by
// Brownian steps.
package systems

import (
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/membrane/components"
)

// Vesicle is a value copy of one vesicle's state.
type Vesicle struct {
	Center     r2.Vec
	Samples    []r2.Vec
	Radius     float64
	Diffusion  float64
	DT         float64
	Overlapped []int
}

// VesicleSet stores vesicles as ECS entities and iterates them in creation order.
type VesicleSet struct {
	world  *ecs.World
	mapper *ecs.Map5[
		components.Position,
		components.Perimeter,
		components.Body,
		components.Footprint,
		components.Origin,
	]
	order []ecs.Entity
}

// NewVesicleSet creates an empty set backed by its own ECS world.
func NewVesicleSet() *VesicleSet {
	world := ecs.NewWorld()
	return &VesicleSet{
		world: world,
		mapper: ecs.NewMap5[
			components.Position,
			components.Perimeter,
			components.Body,
			components.Footprint,
			components.Origin,
		](world),
	}
}

// Add appends v. The set keeps its own copies of the sample and footprint slices.
func (s *VesicleSet) Add(v Vesicle) ecs.Entity {
	e := s.mapper.NewEntity(
		&components.Position{Center: v.Center},
		&components.Perimeter{Samples: slices.Clone(v.Samples)},
		&components.Body{Radius: v.Radius, Diffusion: v.Diffusion, DT: v.DT},
		&components.Footprint{Triangles: slices.Clone(v.Overlapped)},
		&components.Origin{Start: v.Center},
	)
	s.order = append(s.order, e)
	return e
}

// Len returns the number of vesicles.
func (s *VesicleSet) Len() int {
	return len(s.order)
}

// Entity returns the entity of the i-th vesicle in creation order.
func (s *VesicleSet) Entity(i int) ecs.Entity {
	return s.order[i]
}

// At returns a copy of the i-th vesicle in creation order.
func (s *VesicleSet) At(i int) Vesicle {
	pos, per, body, fp, _ := s.mapper.Get(s.order[i])
	return Vesicle{
		Center:     pos.Center,
		Samples:    slices.Clone(per.Samples),
		Radius:     body.Radius,
		Diffusion:  body.Diffusion,
		DT:         body.DT,
		Overlapped: slices.Clone(fp.Triangles),
	}
}

// MeanSquaredDisplacement returns the mean over vesicles of |center - origin|^2.
func (s *VesicleSet) MeanSquaredDisplacement() float64 {
	if len(s.order) == 0 {
		return 0
	}
	var sum float64
	for _, e := range s.order {
		pos, _, _, _, origin := s.mapper.Get(e)
		sum += r2.Norm2(r2.Sub(pos.Center, origin.Start))
	}
	return sum / float64(len(s.order))
}

// each visits vesicles in creation order with mutable component pointers.
func (s *VesicleSet) each(fn func(i int, pos *components.Position, per *components.Perimeter, body *components.Body, fp *components.Footprint)) {
	for i, e := range s.order {
		pos, per, body, fp, _ := s.mapper.Get(e)
		fn(i, pos, per, body, fp)
	}
}
