package systems

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/membrane/components"
	"github.com/pthm-cable/membrane/mesh"
)

// Displacer proposes the displacement of one vesicle for one tick.
// scale is sqrt(2*D*dt).
type Displacer interface {
	Displace(scale float64) r2.Vec
}

// BrownianDisplacer draws isotropic Gaussian steps: scale * (N(0,1), N(0,1)).
type BrownianDisplacer struct {
	normal distuv.Normal
}

// NewBrownianDisplacer returns a displacer drawing from src.
func NewBrownianDisplacer(src rand.Source) *BrownianDisplacer {
	return &BrownianDisplacer{normal: distuv.Normal{Mu: 0, Sigma: 1, Src: src}}
}

// Displace implements Displacer.
func (b *BrownianDisplacer) Displace(scale float64) r2.Vec {
	return r2.Vec{X: scale * b.normal.Rand(), Y: scale * b.normal.Rand()}
}

// StepResult summarizes one tick.
type StepResult struct {
	Accepted int
	Rejected int

	// Proposed holds every proposed displacement this tick, in vesicle order,
	// whether or not it was committed.
	Proposed []r2.Vec
}

// Diffusion advances vesicles by one Brownian step per tick.
type Diffusion struct {
	tracker   *mesh.Tracker
	displacer Displacer

	// Reused proposal buffers.
	samples  []r2.Vec
	proposed []r2.Vec
}

// NewDiffusion returns an engine resolving moves on tr.
func NewDiffusion(tr *mesh.Tracker, d Displacer) *Diffusion {
	return &Diffusion{tracker: tr, displacer: d}
}

// Step proposes a rigid translation of every vesicle, in creation order, and
// commits it if the tracker accepts. A rejected move leaves the vesicle and
// its claimed triangles as they were. Later vesicles see the moves committed
// by earlier ones in the same tick.
//
// The Proposed slice of the result is reused by the next call.
func (d *Diffusion) Step(set *VesicleSet) StepResult {
	d.proposed = d.proposed[:0]
	var res StepResult

	set.each(func(_ int, pos *components.Position, per *components.Perimeter, body *components.Body, fp *components.Footprint) {
		delta := d.displacer.Displace(body.StepScale())
		d.proposed = append(d.proposed, delta)

		center := r2.Add(pos.Center, delta)
		d.samples = d.samples[:0]
		for _, s := range per.Samples {
			d.samples = append(d.samples, r2.Add(s, delta))
		}

		ok, footprint := d.tracker.Resolve(body.Radius, fp.Triangles, center, d.samples)
		if !ok {
			res.Rejected++
			return
		}

		pos.Center = center
		per.Samples = append(per.Samples[:0], d.samples...)
		fp.Triangles = footprint
		res.Accepted++
	})

	res.Proposed = d.proposed
	return res
}
