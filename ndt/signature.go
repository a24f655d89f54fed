package ndt

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/material"
)

// MapSignature condenses an LDOS map into a compact health fingerprint:
// [mean, std, max, min, median] of the flattened map. Useful when a full
// per-pixel baseline is too heavy and a scalar drift check is enough.
func MapSignature(ldos mat.Matrix) *material.FeatureSignature {
	r, c := ldos.Dims()
	flat := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			flat = append(flat, ldos.At(i, j))
		}
	}

	sorted := append([]float64(nil), flat...)
	sort.Float64s(sorted)

	features := []float64{
		stat.Mean(flat, nil),
		stat.PopStdDev(flat, nil),
		sorted[len(sorted)-1],
		sorted[0],
		stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	return material.NewFeatureSignature(features)
}
