package mesh

import "gonum.org/v1/gonum/spatial/r2"

// Contains reports whether p lies inside t or on its boundary (half-plane test).
func (t Triangle) Contains(p r2.Vec) bool {
	for i := range t.Vertices {
		if r2.Dot(r2.Sub(p, t.Vertices[i]), t.Normals[i]) < 0 {
			return false
		}
	}
	return true
}

// Overlaps reports whether a circular probe overlaps t: either one of the
// perimeter samples lies inside t, or every vertex of t is within radius of
// center (the probe swallows a triangle too small to catch a sample).
func Overlaps(t Triangle, center r2.Vec, radius float64, samples []r2.Vec) bool {
	for _, s := range samples {
		if t.Contains(s) {
			return true
		}
	}

	r2sq := radius * radius
	for _, v := range t.Vertices {
		if r2.Norm2(r2.Sub(v, center)) > r2sq {
			return false
		}
	}
	return true
}
