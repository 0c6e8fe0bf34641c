package mesh

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// centroidGrid buckets triangle centroids into square cells so broad-phase
// radius queries only touch nearby triangles.
type centroidGrid struct {
	cellSize   float64
	cols, rows int
	minX, minY float64
	centroids  []r2.Vec
	cells      [][]int // flat grid of triangle index lists
}

func newCentroidGrid(centroids []r2.Vec, cellSize float64) *centroidGrid {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range centroids {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}

	g := &centroidGrid{
		cellSize:  cellSize,
		cols:      int((maxX-minX)/cellSize) + 1,
		rows:      int((maxY-minY)/cellSize) + 1,
		minX:      minX,
		minY:      minY,
		centroids: centroids,
	}

	g.cells = make([][]int, g.cols*g.rows)
	for i, c := range centroids {
		col := int((c.X - minX) / cellSize)
		row := int((c.Y - minY) / cellSize)
		idx := row*g.cols + col
		g.cells[idx] = append(g.cells[idx], i)
	}
	return g
}

// queryRadiusInto appends to dst the indices of centroids within radius of
// center, sorted ascending. Reuse dst across calls to avoid allocations.
func (g *centroidGrid) queryRadiusInto(dst []int, center r2.Vec, radius float64) []int {
	if len(g.centroids) == 0 || radius < 0 {
		return dst
	}

	colLo, colHi, ok := g.span(center.X-radius-g.minX, center.X+radius-g.minX, g.cols)
	if !ok {
		return dst
	}
	rowLo, rowHi, ok := g.span(center.Y-radius-g.minY, center.Y+radius-g.minY, g.rows)
	if !ok {
		return dst
	}

	start := len(dst)
	radiusSq := radius * radius
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				if r2.Norm2(r2.Sub(g.centroids[i], center)) <= radiusSq {
					dst = append(dst, i)
				}
			}
		}
	}

	slices.Sort(dst[start:])
	return dst
}

// span converts a world interval (relative to the grid origin) into an
// inclusive cell range clamped to [0, n-1]. ok is false if the interval
// misses the grid entirely.
func (g *centroidGrid) span(lo, hi float64, n int) (first, last int, ok bool) {
	// NaN bounds never compare true, so they fall through to a miss.
	if !(hi >= 0) || !(lo <= float64(n)*g.cellSize) {
		return 0, 0, false
	}

	first, last = 0, n-1
	if lo > 0 {
		first = min(int(lo/g.cellSize), n-1)
	}
	if c := hi / g.cellSize; c < float64(n-1) {
		last = int(c)
	}
	return first, last, true
}
