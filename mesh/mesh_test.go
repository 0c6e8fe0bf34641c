package mesh

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func TestBuildInvalidConfig(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		edge       float64
	}{
		{"single row", 1, 10, 10},
		{"single col", 10, 1, 10},
		{"empty", 0, 0, 10},
		{"zero edge", 10, 10, 0},
		{"negative edge", 10, 10, -1},
		{"nan edge", 10, 10, math.NaN()},
		{"inf edge", 10, 10, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(tt.rows, tt.cols, tt.edge)
			if !errors.Is(err, ErrInvalidMeshConfig) {
				t.Fatalf("Build(%d, %d, %v) error = %v, want ErrInvalidMeshConfig", tt.rows, tt.cols, tt.edge, err)
			}
			if m != nil {
				t.Error("expected no mesh on error")
			}
		})
	}
}

func TestBuildBounds(t *testing.T) {
	m, err := Build(10, 10, 10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if math.Abs(m.XMax()-95.0) > tol {
		t.Errorf("XMax = %v, want 95", m.XMax())
	}
	wantY := 9 * math.Sqrt(3) / 2 * 10
	if math.Abs(m.YMax()-wantY) > tol {
		t.Errorf("YMax = %v, want %v", m.YMax(), wantY)
	}
	if math.Abs(m.YMax()-77.94) > 0.01 {
		t.Errorf("YMax = %v, want ~77.94", m.YMax())
	}
	if m.Len() != 2*9*9 {
		t.Errorf("Len = %d, want %d", m.Len(), 2*9*9)
	}
	if len(m.Points()) != 100 {
		t.Errorf("len(Points) = %d, want 100", len(m.Points()))
	}
}

func TestBuildMinimalQuad(t *testing.T) {
	m, err := Build(2, 2, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	// Even row split: (p0,p1,p2) then (p1,p3,p2).
	want := [2][3]r2.Vec{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: math.Sqrt(3) / 2}},
		{{X: 1, Y: 0}, {X: 1.5, Y: math.Sqrt(3) / 2}, {X: 0.5, Y: math.Sqrt(3) / 2}},
	}
	for ti, verts := range want {
		got := m.Triangle(ti).Vertices
		for vi := range verts {
			if r2.Norm(r2.Sub(got[vi], verts[vi])) > tol {
				t.Errorf("triangle %d vertex %d = %v, want %v", ti, vi, got[vi], verts[vi])
			}
		}
	}
}

func TestNormalsUnitAndPerpendicular(t *testing.T) {
	for _, dims := range [][2]int{{2, 2}, {3, 5}, {10, 10}, {7, 4}} {
		m, err := Build(dims[0], dims[1], 10)
		if err != nil {
			t.Fatalf("Build(%v): %v", dims, err)
		}

		for i := 0; i < m.Len(); i++ {
			tri := m.Triangle(i)
			for k := 0; k < 3; k++ {
				n := tri.Normals[k]
				if math.Abs(r2.Norm(n)-1) > tol {
					t.Errorf("dims %v triangle %d normal %d has length %v", dims, i, k, r2.Norm(n))
				}
				edge := r2.Sub(tri.Vertices[(k+1)%3], tri.Vertices[k])
				if math.Abs(r2.Dot(edge, n)) > tol {
					t.Errorf("dims %v triangle %d normal %d not perpendicular to edge: dot=%v", dims, i, k, r2.Dot(edge, n))
				}
			}
		}
	}
}

func TestConsistentWinding(t *testing.T) {
	m, err := Build(8, 9, 2.5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < m.Len(); i++ {
		v := m.Triangle(i).Vertices
		area2 := r2.Cross(r2.Sub(v[1], v[0]), r2.Sub(v[2], v[0]))
		if area2 <= 0 {
			t.Errorf("triangle %d is not counter-clockwise (area2=%v)", i, area2)
		}
	}
}

func TestNewTriangleReordersClockwise(t *testing.T) {
	cw := [3]r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}
	tri, err := newTriangle(cw)
	if err != nil {
		t.Fatalf("newTriangle: %v", err)
	}
	if !tri.Contains(tri.Centroid) {
		t.Error("centroid of reordered triangle should be inside")
	}
	if tri.Vertices[1] != cw[2] || tri.Vertices[2] != cw[1] {
		t.Errorf("expected v1 and v2 swapped, got %v", tri.Vertices)
	}
}

func TestNewTriangleDegenerate(t *testing.T) {
	line := [3]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	if _, err := newTriangle(line); !errors.Is(err, ErrDegenerateTriangle) {
		t.Errorf("error = %v, want ErrDegenerateTriangle", err)
	}
}

func TestCentroidsWithinMatchesLinearScan(t *testing.T) {
	m, err := Build(10, 12, 10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	queries := []struct {
		center r2.Vec
		radius float64
	}{
		{r2.Vec{X: 50, Y: 40}, 24},
		{r2.Vec{X: 0, Y: 0}, 15},
		{r2.Vec{X: 110, Y: 77}, 30},
		{r2.Vec{X: -20, Y: 39}, 24},
		{r2.Vec{X: 1000, Y: 1000}, 5},
		{r2.Vec{X: 55, Y: 40}, 1000},
		{r2.Vec{X: 55, Y: 40}, 0},
	}

	for _, q := range queries {
		got := m.CentroidsWithin(q.center, q.radius)

		var want []int
		for i := 0; i < m.Len(); i++ {
			if r2.Norm2(r2.Sub(m.Triangle(i).Centroid, q.center)) <= q.radius*q.radius {
				want = append(want, i)
			}
		}

		if len(got) != len(want) {
			t.Errorf("CentroidsWithin(%v, %v) returned %d indices, want %d", q.center, q.radius, len(got), len(want))
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("CentroidsWithin(%v, %v)[%d] = %d, want %d", q.center, q.radius, i, got[i], want[i])
				break
			}
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Build(100, 100, 10); err != nil {
			b.Fatal(err)
		}
	}
}
