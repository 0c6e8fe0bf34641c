package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/membrane/mesh"
)

// ErrPlacementFailure is returned when no non-colliding position was found
// within the attempt budget.
var ErrPlacementFailure = errors.New("placement failure")

// PlacementParams describes the vesicle to place and the area to draw from.
type PlacementParams struct {
	Radius      float64
	XMax, YMax  float64
	Samples     int
	Diffusion   float64
	DT          float64
	MaxAttempts int
}

// Placer draws random initial positions for new vesicles.
type Placer struct {
	src rand.Source
}

// NewPlacer returns a placer drawing from src.
func NewPlacer(src rand.Source) *Placer {
	return &Placer{src: src}
}

// Place draws centers uniformly from [2r, XMax-2r] x [r, YMax-r] until one
// resolves without collision, claiming its triangles on the tracker's mesh.
// Each failed attempt leaves the mesh untouched.
func (p *Placer) Place(tr *mesh.Tracker, params PlacementParams) (Vesicle, error) {
	r := params.Radius
	if params.MaxAttempts < 1 {
		return Vesicle{}, fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrPlacementFailure, params.MaxAttempts)
	}

	// Uniform maps u in [0,1) to Min + u*(Max-Min), so a range inverted by a
	// large radius is still sampled between its two bounds.
	xs := distuv.Uniform{Min: 2 * r, Max: params.XMax - 2*r, Src: p.src}
	ys := distuv.Uniform{Min: r, Max: params.YMax - r, Src: p.src}

	for attempt := 0; attempt < params.MaxAttempts; attempt++ {
		center := r2.Vec{X: xs.Rand(), Y: ys.Rand()}
		samples := Ring(center, r, params.Samples)

		ok, footprint := tr.Resolve(r, nil, center, samples)
		if !ok {
			continue
		}
		return Vesicle{
			Center:     center,
			Samples:    samples,
			Radius:     r,
			Diffusion:  params.Diffusion,
			DT:         params.DT,
			Overlapped: footprint,
		}, nil
	}

	return Vesicle{}, fmt.Errorf("%w: radius %g, %d attempts", ErrPlacementFailure, r, params.MaxAttempts)
}

// Seed places n vesicles in order and adds them to set. It stops at the first
// vesicle that cannot be placed.
func Seed(tr *mesh.Tracker, set *VesicleSet, p *Placer, params PlacementParams, n int) error {
	for i := 0; i < n; i++ {
		v, err := p.Place(tr, params)
		if err != nil {
			return fmt.Errorf("seeding vesicle %d of %d: %w", i+1, n, err)
		}
		set.Add(v)
	}
	return nil
}

// Ring returns n points evenly spaced by angle 2*pi/n on a circle around
// center, starting at angle 0.
func Ring(center r2.Vec, radius float64, n int) []r2.Vec {
	pts := make([]r2.Vec, n)
	for k := range pts {
		a := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = r2.Add(center, r2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)})
	}
	return pts
}
