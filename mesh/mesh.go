// Package mesh builds the hex-packed triangle mesh of the membrane and owns
// the per-triangle occupancy flags.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrInvalidMeshConfig is returned by Build when no full quad can be formed
	// or the edge length is not a positive finite number.
	ErrInvalidMeshConfig = errors.New("invalid mesh config")

	// ErrDegenerateTriangle is returned by Build when a generated triangle has
	// zero area and therefore no defined winding.
	ErrDegenerateTriangle = errors.New("degenerate triangle")
)

// Triangle is one mesh cell.
type Triangle struct {
	// Vertices are wound counter-clockwise (y up).
	Vertices [3]r2.Vec

	// Normals[i] is the unit perpendicular of edge Vertices[i] -> Vertices[(i+1)%3],
	// the edge vector rotated a quarter turn. Under counter-clockwise winding it
	// faces the interior side of that edge, so a point is inside the triangle
	// iff its offset from every edge start has a non-negative dot with the normal.
	Normals [3]r2.Vec

	Centroid r2.Vec
}

// Mesh is an index-stable sequence of triangles built once from grid
// dimensions and an edge length.
//
// Occupancy flags are only written by Tracker.Resolve.
type Mesh struct {
	rows, cols int
	edge       float64

	points    []r2.Vec
	triangles []Triangle
	occupied  []bool
	grid      *centroidGrid

	xMax, yMax float64
}

// Build generates the rows*cols hex-packed grid points and splits every
// interior quad into two triangles, alternating the diagonal by row parity.
func Build(rows, cols int, edge float64) (*Mesh, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: need at least 2x2 grid points, got %dx%d", ErrInvalidMeshConfig, rows, cols)
	}
	if !(edge > 0) || math.IsInf(edge, 1) {
		return nil, fmt.Errorf("%w: edge length must be positive and finite, got %v", ErrInvalidMeshConfig, edge)
	}

	points := hexGrid(rows, cols, edge)

	m := &Mesh{
		rows:      rows,
		cols:      cols,
		edge:      edge,
		points:    points,
		triangles: make([]Triangle, 0, 2*(rows-1)*(cols-1)),
	}

	for j := 0; j < rows-1; j++ {
		for i := 0; i < cols-1; i++ {
			idx := j*cols + i
			p0 := points[idx]
			p1 := points[idx+1]
			p2 := points[idx+cols]
			p3 := points[idx+cols+1]

			var pair [2][3]r2.Vec
			if j%2 == 0 {
				pair = [2][3]r2.Vec{{p0, p1, p2}, {p1, p3, p2}}
			} else {
				pair = [2][3]r2.Vec{{p0, p1, p3}, {p0, p3, p2}}
			}

			for _, verts := range pair {
				tri, err := newTriangle(verts)
				if err != nil {
					return nil, fmt.Errorf("quad row %d col %d: %w", j, i, err)
				}
				m.triangles = append(m.triangles, tri)
			}
		}
	}

	m.occupied = make([]bool, len(m.triangles))

	for _, p := range points {
		m.xMax = math.Max(m.xMax, p.X)
		m.yMax = math.Max(m.yMax, p.Y)
	}

	centroids := make([]r2.Vec, len(m.triangles))
	for i := range m.triangles {
		centroids[i] = m.triangles[i].Centroid
	}
	m.grid = newCentroidGrid(centroids, edge)

	return m, nil
}

// hexGrid returns grid points in row-major order, odd rows shifted by half an edge.
func hexGrid(rows, cols int, edge float64) []r2.Vec {
	rowHeight := math.Sqrt(3) / 2 * edge
	points := make([]r2.Vec, 0, rows*cols)
	for j := 0; j < rows; j++ {
		offset := float64(j%2) * (edge / 2)
		for i := 0; i < cols; i++ {
			points = append(points, r2.Vec{
				X: float64(i)*edge + offset,
				Y: float64(j) * rowHeight,
			})
		}
	}
	return points
}

// newTriangle orients verts counter-clockwise and derives normals and centroid.
func newTriangle(verts [3]r2.Vec) (Triangle, error) {
	area2 := r2.Cross(r2.Sub(verts[1], verts[0]), r2.Sub(verts[2], verts[0]))
	if area2 == 0 || math.IsNaN(area2) {
		return Triangle{}, fmt.Errorf("%w: %v", ErrDegenerateTriangle, verts)
	}
	if area2 < 0 {
		verts[1], verts[2] = verts[2], verts[1]
	}

	t := Triangle{Vertices: verts}
	for i := range verts {
		e := r2.Sub(verts[(i+1)%3], verts[i])
		t.Normals[i] = r2.Unit(r2.Vec{X: -e.Y, Y: e.X})
	}
	t.Centroid = r2.Scale(1.0/3, r2.Add(r2.Add(verts[0], verts[1]), verts[2]))
	return t, nil
}

// Len returns the number of triangles.
func (m *Mesh) Len() int {
	return len(m.triangles)
}

// Triangle returns a copy of triangle i.
func (m *Mesh) Triangle(i int) Triangle {
	return m.triangles[i]
}

// Occupied reports whether some vesicle currently claims triangle i.
func (m *Mesh) Occupied(i int) bool {
	return m.occupied[i]
}

// OccupiedCount returns the number of claimed triangles.
func (m *Mesh) OccupiedCount() int {
	n := 0
	for _, o := range m.occupied {
		if o {
			n++
		}
	}
	return n
}

// OccupiedIndices returns the claimed triangle indices in ascending order.
func (m *Mesh) OccupiedIndices() []int {
	var out []int
	for i, o := range m.occupied {
		if o {
			out = append(out, i)
		}
	}
	return out
}

// CentroidsWithin returns, in ascending order, the indices of triangles whose
// centroid lies within radius of center.
func (m *Mesh) CentroidsWithin(center r2.Vec, radius float64) []int {
	return m.grid.queryRadiusInto(nil, center, radius)
}

// Points returns a copy of the grid points.
func (m *Mesh) Points() []r2.Vec {
	out := make([]r2.Vec, len(m.points))
	copy(out, m.points)
	return out
}

// XMax returns the largest grid x coordinate.
func (m *Mesh) XMax() float64 { return m.xMax }

// YMax returns the largest grid y coordinate.
func (m *Mesh) YMax() float64 { return m.yMax }

// Rows returns the number of grid point rows.
func (m *Mesh) Rows() int { return m.rows }

// Cols returns the number of grid point columns.
func (m *Mesh) Cols() int { return m.cols }

// EdgeLength returns the triangle edge length L.
func (m *Mesh) EdgeLength() float64 { return m.edge }
