package medium

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrEigenFailed reports a failed symmetric eigendecomposition.
var ErrEigenFailed = errors.New("medium: eigendecomposition failed to converge")

// solveGeneralized solves K v = ω² M v for a symmetric stiffness operator and
// a diagonal, strictly positive mass operator given by its diagonal.
//
// The problem is transformed to the standard symmetric form
// C = M^{-1/2} K M^{-1/2}, whose eigenvectors u map back to generalized modes
// v = M^{-1/2} u. Since the u are orthonormal, the v satisfy Vᵀ M V = I.
// Eigenvalues that come out slightly negative from numerical noise are
// clamped to zero before the square root.
//
// nModes limits the result to the lowest nModes pairs; values <= 0 or >= n
// return the full spectrum. The dense solve always computes every pair; the
// truncation only trims the output, an accepted toy-scale cost.
func solveGeneralized(k *mat.SymDense, mass []float64, nModes int) ([]float64, *mat.Dense) {
	n := len(mass)

	invSqrt := make([]float64, n)
	for i, m := range mass {
		invSqrt[i] = 1 / math.Sqrt(m)
	}

	c := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c.SetSym(i, j, k.At(i, j)*invSqrt[i]*invSqrt[j])
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(c, true); !ok {
		// LAPACK dsyev failing on a finite symmetric matrix of toy size
		// does not happen in practice; panic mirrors gonum's own stance.
		panic(ErrEigenFailed)
	}

	values := es.Values(nil) // ascending
	var u mat.Dense
	es.VectorsTo(&u)

	if nModes <= 0 || nModes > n {
		nModes = n
	}

	omega := make([]float64, nModes)
	for i := 0; i < nModes; i++ {
		v := values[i]
		if v < 0 {
			v = 0
		}
		omega[i] = math.Sqrt(v)
	}

	modes := mat.NewDense(n, nModes, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < nModes; j++ {
			modes.Set(i, j, u.At(i, j)*invSqrt[i])
		}
	}

	return omega, modes
}
