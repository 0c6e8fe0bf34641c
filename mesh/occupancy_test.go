package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// ring returns n points evenly spaced on a circle, starting at angle 0.
func ring(center r2.Vec, radius float64, n int) []r2.Vec {
	pts := make([]r2.Vec, n)
	for k := range pts {
		a := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = r2.Vec{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}

func TestCentroidInsideEveryTriangle(t *testing.T) {
	m, err := Build(10, 10, 10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < m.Len(); i++ {
		tri := m.Triangle(i)
		if !tri.Contains(tri.Centroid) {
			t.Errorf("triangle %d does not contain its centroid", i)
		}
		if !Overlaps(tri, tri.Centroid, 0, []r2.Vec{tri.Centroid}) {
			t.Errorf("triangle %d: centroid sample should register", i)
		}
		// No samples and a zero radius: neither rule can fire.
		if Overlaps(tri, tri.Centroid, 0, nil) {
			t.Errorf("triangle %d: empty probe should not overlap", i)
		}
	}
}

func TestContains(t *testing.T) {
	tri, err := newTriangle([3]r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}})
	if err != nil {
		t.Fatalf("newTriangle: %v", err)
	}

	tests := []struct {
		name string
		p    r2.Vec
		want bool
	}{
		{"interior", r2.Vec{X: 5, Y: 3}, true},
		{"vertex", r2.Vec{X: 0, Y: 0}, true},
		{"on edge", r2.Vec{X: 5, Y: 0}, true},
		{"below base", r2.Vec{X: 5, Y: -0.01}, false},
		{"right of slope", r2.Vec{X: 9, Y: 5}, false},
		{"far away", r2.Vec{X: 100, Y: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tri.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tri, err := newTriangle([3]r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}})
	if err != nil {
		t.Fatalf("newTriangle: %v", err)
	}

	tests := []struct {
		name   string
		center r2.Vec
		radius float64
		want   bool
	}{
		// Ring crosses the triangle: samples land inside.
		{"sample inside", r2.Vec{X: -2, Y: 2}, 5, true},
		// Ring encloses the triangle: no sample inside, all vertices within r.
		{"swallowed", tri.Centroid, 20, true},
		// Ring too far to touch.
		{"disjoint", r2.Vec{X: 50, Y: 50}, 5, false},
		// Ring just below the base edge.
		{"near miss", r2.Vec{X: 5, Y: -1}, 0.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := ring(tt.center, tt.radius, 8)
			if got := Overlaps(tri, tt.center, tt.radius, samples); got != tt.want {
				t.Errorf("Overlaps(center=%v, r=%v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}
