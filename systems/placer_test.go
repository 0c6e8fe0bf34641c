package systems

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPlaceOnEmptyMesh(t *testing.T) {
	tr := newTracker(t)
	params := defaultParams(tr.Mesh())
	p := NewPlacer(newPCG(1))

	v, err := p.Place(tr, params)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	r := params.Radius
	if v.Center.X < 2*r || v.Center.X > params.XMax-2*r {
		t.Errorf("center x %v outside [%v, %v]", v.Center.X, 2*r, params.XMax-2*r)
	}
	if v.Center.Y < r || v.Center.Y > params.YMax-r {
		t.Errorf("center y %v outside [%v, %v]", v.Center.Y, r, params.YMax-r)
	}

	if len(v.Samples) != params.Samples {
		t.Fatalf("len(Samples) = %d, want %d", len(v.Samples), params.Samples)
	}
	for i, s := range v.Samples {
		if d := r2.Norm(r2.Sub(s, v.Center)); math.Abs(d-r) > 1e-9 {
			t.Errorf("sample %d at distance %v, want %v", i, d, r)
		}
	}
	if first := r2.Sub(v.Samples[0], v.Center); math.Abs(first.X-r) > 1e-9 || math.Abs(first.Y) > 1e-9 {
		t.Errorf("first sample offset %v, want angle 0", first)
	}

	if len(v.Overlapped) == 0 {
		t.Fatal("placed vesicle claims no triangles")
	}
	for _, idx := range v.Overlapped {
		if !tr.Mesh().Occupied(idx) {
			t.Errorf("footprint triangle %d not occupied", idx)
		}
	}
	if tr.Mesh().OccupiedCount() != len(v.Overlapped) {
		t.Errorf("OccupiedCount = %d, want %d", tr.Mesh().OccupiedCount(), len(v.Overlapped))
	}
	if v.Diffusion != params.Diffusion || v.DT != params.DT || v.Radius != r {
		t.Errorf("constants not carried: %+v", v)
	}
}

func TestPlaceLargeRadius(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		tr := newTracker(t)
		params := defaultParams(tr.Mesh())
		// Larger than min(XMax, YMax)/2, so the draw ranges are inverted.
		params.Radius = 40
		params.MaxAttempts = 200
		p := NewPlacer(newPCG(seed))

		if _, err := p.Place(tr, params); err != nil {
			t.Fatalf("seed %d: first large vesicle: %v", seed, err)
		}

		before := tr.Mesh().OccupiedIndices()
		_, err := p.Place(tr, params)
		if !errors.Is(err, ErrPlacementFailure) {
			t.Fatalf("seed %d: second large vesicle error = %v, want ErrPlacementFailure", seed, err)
		}
		after := tr.Mesh().OccupiedIndices()
		if len(before) != len(after) {
			t.Errorf("seed %d: failed placement changed occupancy (%d -> %d)", seed, len(before), len(after))
		}
	}
}

func TestPlaceRequiresAttempts(t *testing.T) {
	tr := newTracker(t)
	params := defaultParams(tr.Mesh())
	params.MaxAttempts = 0

	if _, err := NewPlacer(newPCG(1)).Place(tr, params); !errors.Is(err, ErrPlacementFailure) {
		t.Errorf("error = %v, want ErrPlacementFailure", err)
	}
}

func TestSeed(t *testing.T) {
	tr := newTracker(t)
	set := NewVesicleSet()

	if err := Seed(tr, set, NewPlacer(newPCG(7)), defaultParams(tr.Mesh()), 4); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if set.Len() != 4 {
		t.Fatalf("Len = %d, want 4", set.Len())
	}
	if err := CheckOccupancy(tr.Mesh(), set); err != nil {
		t.Errorf("CheckOccupancy: %v", err)
	}
}

func TestSeedReportsFailure(t *testing.T) {
	tr := newTracker(t)
	set := NewVesicleSet()
	params := defaultParams(tr.Mesh())
	params.Radius = 40
	params.MaxAttempts = 50

	err := Seed(tr, set, NewPlacer(newPCG(3)), params, 3)
	if !errors.Is(err, ErrPlacementFailure) {
		t.Fatalf("Seed error = %v, want ErrPlacementFailure", err)
	}
	if set.Len() != 1 {
		t.Errorf("Len = %d, want 1 (placed before the failure)", set.Len())
	}
}
