package systems

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/membrane/mesh"
)

const (
	testDiffusion = 5.0
	testDT        = 0.1
	testSamples   = 8
)

func newTracker(t testing.TB) *mesh.Tracker {
	t.Helper()
	m, err := mesh.Build(10, 10, 10)
	if err != nil {
		t.Fatalf("mesh.Build: %v", err)
	}
	return mesh.NewTracker(m)
}

// addAt claims the triangles under a vesicle at center and adds it to set.
func addAt(t *testing.T, tr *mesh.Tracker, set *VesicleSet, center r2.Vec, radius float64) {
	t.Helper()
	samples := Ring(center, radius, testSamples)
	ok, fp := tr.Resolve(radius, nil, center, samples)
	if !ok {
		t.Fatalf("vesicle at %v rejected", center)
	}
	set.Add(Vesicle{
		Center:     center,
		Samples:    samples,
		Radius:     radius,
		Diffusion:  testDiffusion,
		DT:         testDT,
		Overlapped: fp,
	})
}

func defaultParams(m *mesh.Mesh) PlacementParams {
	return PlacementParams{
		Radius:      10,
		XMax:        m.XMax(),
		YMax:        m.YMax(),
		Samples:     testSamples,
		Diffusion:   testDiffusion,
		DT:          testDT,
		MaxAttempts: 1000,
	}
}

func newPCG(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func TestVesicleSetCopies(t *testing.T) {
	set := NewVesicleSet()
	samples := []r2.Vec{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	fp := []int{3, 4}
	set.Add(Vesicle{Center: r2.Vec{}, Samples: samples, Radius: 1, Overlapped: fp})

	samples[0] = r2.Vec{X: 99, Y: 99}
	fp[0] = 42

	got := set.At(0)
	if got.Samples[0] != (r2.Vec{X: 1, Y: 0}) {
		t.Errorf("stored samples aliased input: %v", got.Samples)
	}
	if got.Overlapped[0] != 3 {
		t.Errorf("stored footprint aliased input: %v", got.Overlapped)
	}

	got.Samples[1] = r2.Vec{X: 7, Y: 7}
	if set.At(0).Samples[1] != (r2.Vec{X: 0, Y: 1}) {
		t.Error("At returned a view into stored samples")
	}
}

func TestVesicleSetOrder(t *testing.T) {
	set := NewVesicleSet()
	for i := 0; i < 5; i++ {
		set.Add(Vesicle{Center: r2.Vec{X: float64(i)}, Radius: 1})
	}
	if set.Len() != 5 {
		t.Fatalf("Len = %d, want 5", set.Len())
	}
	for i := 0; i < set.Len(); i++ {
		if got := set.At(i).Center.X; got != float64(i) {
			t.Errorf("At(%d).Center.X = %v, want %d", i, got, i)
		}
	}
	if set.MeanSquaredDisplacement() != 0 {
		t.Errorf("MSD of unmoved set = %v, want 0", set.MeanSquaredDisplacement())
	}
}

func TestRing(t *testing.T) {
	center := r2.Vec{X: 3, Y: 4}
	pts := Ring(center, 2, 4)

	want := []r2.Vec{{X: 5, Y: 4}, {X: 3, Y: 6}, {X: 1, Y: 4}, {X: 3, Y: 2}}
	for i := range want {
		if r2.Norm(r2.Sub(pts[i], want[i])) > 1e-12 {
			t.Errorf("Ring[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
}
