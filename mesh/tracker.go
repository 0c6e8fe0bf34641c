package mesh

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// BroadPhaseFactor scales the vesicle radius into the centroid distance
// cutoff used to select candidate triangles.
const BroadPhaseFactor = 3.0

// Tracker validates candidate vesicle positions against the mesh and commits
// accepted footprints. It is the only writer of the mesh occupancy flags.
//
// A Tracker is not safe for concurrent use; callers serialize ticks.
type Tracker struct {
	mesh *Mesh

	// Scratch buffers reused across Resolve calls.
	candidates []int
	hits       []int
}

// NewTracker returns a tracker for m.
func NewTracker(m *Mesh) *Tracker {
	return &Tracker{
		mesh:       m,
		candidates: make([]int, 0, 64),
		hits:       make([]int, 0, 32),
	}
}

// Mesh returns the tracked mesh.
func (tr *Tracker) Mesh() *Mesh {
	return tr.mesh
}

// Resolve tests a vesicle of the given radius at center (with perimeter
// samples) against the mesh.
//
// previous is the set of triangles the vesicle claims right now. A hit on an
// occupied triangle outside previous belongs to another vesicle and rejects
// the candidate, as does a candidate with no triangle nearby. On rejection
// the mesh is untouched and previous is returned as is. On acceptance
// previous is released, the new footprint acquired, and the new footprint
// returned as a fresh ascending slice.
func (tr *Tracker) Resolve(radius float64, previous []int, center r2.Vec, samples []r2.Vec) (bool, []int) {
	m := tr.mesh

	tr.candidates = m.grid.queryRadiusInto(tr.candidates[:0], center, BroadPhaseFactor*radius)
	if len(tr.candidates) == 0 {
		return false, previous
	}

	tr.hits = tr.hits[:0]
	for _, idx := range tr.candidates {
		if !Overlaps(m.triangles[idx], center, radius, samples) {
			continue
		}
		if m.occupied[idx] && !slices.Contains(previous, idx) {
			return false, previous
		}
		tr.hits = append(tr.hits, idx)
	}

	for _, idx := range previous {
		m.occupied[idx] = false
	}
	for _, idx := range tr.hits {
		m.occupied[idx] = true
	}

	footprint := make([]int, len(tr.hits))
	copy(footprint, tr.hits)
	return true, footprint
}
