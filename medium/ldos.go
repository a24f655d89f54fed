package medium

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// ErrModeShape reports a mode matrix whose column count does not match the
// frequency list.
var ErrModeShape = errors.New("medium: mode matrix does not match frequency count")

// LDOS reduces a set of eigenmodes to a per-node local density of states
// restricted to the closed frequency band: for each spatial row of the mode
// matrix, the sum of squared amplitudes over the columns whose frequency lies
// in the band.
//
// An empty selection yields the all-zero vector, not an error. O(N * K_selected).
func LDOS(modes mat.Matrix, omegas []float64, band spectrum.Band) ([]float64, error) {
	n, k := modes.Dims()
	if k != len(omegas) {
		return nil, fmt.Errorf("%w: %d mode columns, %d frequencies",
			ErrModeShape, k, len(omegas))
	}

	selected := make([]int, 0, k)
	for j, w := range omegas {
		if band.Contains(w) {
			selected = append(selected, j)
		}
	}

	ldos := make([]float64, n)
	for _, j := range selected {
		for i := 0; i < n; i++ {
			v := modes.At(i, j)
			ldos[i] += v * v
		}
	}
	return ldos, nil
}
