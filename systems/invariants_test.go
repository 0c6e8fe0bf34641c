package systems

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestCheckOccupancy(t *testing.T) {
	tests := []struct {
		name    string
		extra   []int // footprint of a vesicle added without claiming through the tracker
		wantErr bool
	}{
		{"consistent", nil, false},
		{"unclaimed footprint", []int{150}, true},
		{"out of range", []int{-1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTracker(t)
			set := NewVesicleSet()
			addAt(t, tr, set, r2.Vec{X: 30, Y: 39}, 8)
			if tt.extra != nil {
				set.Add(Vesicle{Center: r2.Vec{X: 80, Y: 60}, Radius: 1, Overlapped: tt.extra})
			}

			err := CheckOccupancy(tr.Mesh(), set)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckOccupancy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrOccupancyMismatch) {
				t.Errorf("error %v does not wrap ErrOccupancyMismatch", err)
			}
		})
	}
}

func TestCheckOccupancyDoubleClaim(t *testing.T) {
	tr := newTracker(t)
	set := NewVesicleSet()
	addAt(t, tr, set, r2.Vec{X: 30, Y: 39}, 8)
	set.Add(Vesicle{Center: r2.Vec{X: 30, Y: 39}, Radius: 8, Overlapped: set.At(0).Overlapped})

	if err := CheckOccupancy(tr.Mesh(), set); !errors.Is(err, ErrOccupancyMismatch) {
		t.Errorf("error = %v, want ErrOccupancyMismatch", err)
	}
}

func TestTakeSnapshotIsolated(t *testing.T) {
	tr := newTracker(t)
	set := NewVesicleSet()
	addAt(t, tr, set, r2.Vec{X: 30, Y: 39}, 8)

	snap := TakeSnapshot(7, tr.Mesh(), set)
	if snap.Tick != 7 || len(snap.Triangles) != tr.Mesh().Len() || len(snap.Vesicles) != 1 {
		t.Fatalf("snapshot shape = tick %d, %d triangles, %d vesicles", snap.Tick, len(snap.Triangles), len(snap.Vesicles))
	}

	var occupied int
	for _, tri := range snap.Triangles {
		if tri.Occupied {
			occupied++
		}
	}
	if occupied != tr.Mesh().OccupiedCount() {
		t.Errorf("snapshot occupied = %d, want %d", occupied, tr.Mesh().OccupiedCount())
	}
	if len(snap.Vesicles[0].Footprint) != occupied {
		t.Errorf("footprint = %d triangles, want %d", len(snap.Vesicles[0].Footprint), occupied)
	}
	if want := float64(occupied) / float64(len(snap.Triangles)); snap.OccupiedFraction() != want {
		t.Errorf("OccupiedFraction = %f, want %f", snap.OccupiedFraction(), want)
	}

	snap.Vesicles[0].Samples[0] = r2.Vec{X: -1, Y: -1}
	if set.At(0).Samples[0] == (r2.Vec{X: -1, Y: -1}) {
		t.Error("snapshot aliases vesicle samples")
	}
}

func TestSnapshotVesicleAt(t *testing.T) {
	snap := Snapshot{Vesicles: []VesicleView{
		{Center: r2.Vec{X: 20, Y: 20}, Radius: 10},
		{Center: r2.Vec{X: 34, Y: 20}, Radius: 10},
	}}

	testCases := []struct {
		name string
		p    r2.Vec
		want int
	}{
		{"first center", r2.Vec{X: 20, Y: 20}, 0},
		{"first rim", r2.Vec{X: 20, Y: 30}, 0},
		{"overlap nearer second", r2.Vec{X: 28, Y: 20}, 1},
		{"overlap nearer first", r2.Vec{X: 26, Y: 20}, 0},
		{"outside both", r2.Vec{X: 60, Y: 60}, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := snap.VesicleAt(tc.p); got != tc.want {
				t.Errorf("VesicleAt(%v) = %d, want %d", tc.p, got, tc.want)
			}
		})
	}

	if got := (Snapshot{}).OccupiedFraction(); got != 0 {
		t.Errorf("empty OccupiedFraction = %f, want 0", got)
	}
}
