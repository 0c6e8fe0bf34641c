package systems

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/membrane/mesh"
)

// ErrOccupancyMismatch reports a violation of the occupancy bookkeeping.
var ErrOccupancyMismatch = errors.New("occupancy mismatch")

// CheckOccupancy verifies that the occupied triangles of m are exactly the
// union of the vesicles' footprints and that no triangle is claimed twice.
func CheckOccupancy(m *mesh.Mesh, set *VesicleSet) error {
	owner := make([]int, m.Len())
	for i := range owner {
		owner[i] = -1
	}

	var errs []error
	for i := 0; i < set.Len(); i++ {
		for _, idx := range set.At(i).Overlapped {
			if idx < 0 || idx >= m.Len() {
				errs = append(errs, fmt.Errorf("%w: vesicle %d claims triangle %d outside mesh", ErrOccupancyMismatch, i, idx))
				continue
			}
			if prev := owner[idx]; prev >= 0 {
				errs = append(errs, fmt.Errorf("%w: triangle %d claimed by vesicles %d and %d", ErrOccupancyMismatch, idx, prev, i))
				continue
			}
			owner[idx] = i
		}
	}

	for idx, o := range owner {
		claimed := o >= 0
		if m.Occupied(idx) != claimed {
			errs = append(errs, fmt.Errorf("%w: triangle %d occupied=%v but claimed=%v", ErrOccupancyMismatch, idx, m.Occupied(idx), claimed))
		}
	}

	return errors.Join(errs...)
}
