package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/membrane/mesh"
)

// TriangleView is the read-only state of one triangle.
type TriangleView struct {
	Vertices [3]r2.Vec
	Occupied bool
}

// VesicleView is the read-only state of one vesicle.
type VesicleView struct {
	Center    r2.Vec
	Samples   []r2.Vec
	Radius    float64
	Footprint []int
}

// Snapshot is a deep copy of mesh and vesicle state for consumers outside
// the simulation, such as the renderer. Mutating it has no effect on the
// simulation.
type Snapshot struct {
	Tick      int32
	XMax      float64
	YMax      float64
	Triangles []TriangleView
	Vesicles  []VesicleView
}

// TakeSnapshot copies the current state of m and set.
func TakeSnapshot(tick int32, m *mesh.Mesh, set *VesicleSet) Snapshot {
	snap := Snapshot{
		Tick:      tick,
		XMax:      m.XMax(),
		YMax:      m.YMax(),
		Triangles: make([]TriangleView, m.Len()),
		Vesicles:  make([]VesicleView, set.Len()),
	}

	for i := range snap.Triangles {
		snap.Triangles[i] = TriangleView{
			Vertices: m.Triangle(i).Vertices,
			Occupied: m.Occupied(i),
		}
	}

	for i := range snap.Vesicles {
		v := set.At(i)
		snap.Vesicles[i] = VesicleView{
			Center:    v.Center,
			Samples:   v.Samples,
			Radius:    v.Radius,
			Footprint: v.Overlapped,
		}
	}

	return snap
}

// VesicleAt returns the index of the vesicle whose disk contains p, or -1.
// When disks overlap the one with the nearest center wins.
func (s Snapshot) VesicleAt(p r2.Vec) int {
	best, bestDist := -1, math.Inf(1)
	for i, v := range s.Vesicles {
		d := r2.Norm2(r2.Sub(p, v.Center))
		if d <= v.Radius*v.Radius && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// OccupiedFraction returns the share of triangles currently claimed.
func (s Snapshot) OccupiedFraction() float64 {
	if len(s.Triangles) == 0 {
		return 0
	}
	n := 0
	for _, t := range s.Triangles {
		if t.Occupied {
			n++
		}
	}
	return float64(n) / float64(len(s.Triangles))
}
