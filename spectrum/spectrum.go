package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrShapeMismatch reports two array-like quantities of incompatible length.
	ErrShapeMismatch = errors.New("spectrum: shape mismatch")
	// ErrZeroPower reports an attempt to normalize a spectrum whose total
	// power is exactly zero.
	ErrZeroPower = errors.New("spectrum: cannot normalize zero-power spectrum")
	// ErrNonFinite reports power values that are NaN or infinite.
	ErrNonFinite = errors.New("spectrum: power values must be finite")
)

// Spectrum is a discrete 1D spectrum: an angular-frequency grid and the power
// at each grid point. Index i of Omega corresponds to index i of Power.
//
// Treat a Spectrum as immutable once built. Constructors copy their inputs
// and all operations return new instances.
type Spectrum struct {
	Omega []float64
	Power []float64
}

// New builds a Spectrum from a frequency grid and matching power values.
// Both slices are copied. It fails if the lengths differ or any power value
// is not finite.
func New(omega, power []float64) (*Spectrum, error) {
	if len(omega) != len(power) {
		return nil, fmt.Errorf("%w: omega has %d points, power has %d",
			ErrShapeMismatch, len(omega), len(power))
	}
	for i, p := range power {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: power[%d] = %v", ErrNonFinite, i, p)
		}
	}
	return &Spectrum{
		Omega: append([]float64(nil), omega...),
		Power: append([]float64(nil), power...),
	}, nil
}

// FromFunc builds a Spectrum by evaluating a generator over a frequency grid.
// The generator receives the full grid and must return one power value per
// grid point; FromFunc fails if the returned shape differs.
func FromFunc(omega []float64, gen func([]float64) []float64) (*Spectrum, error) {
	power := gen(append([]float64(nil), omega...))
	if len(power) != len(omega) {
		return nil, fmt.Errorf("%w: generator returned %d values for %d frequencies",
			ErrShapeMismatch, len(power), len(omega))
	}
	return New(omega, power)
}

// Len returns the number of spectral points.
func (s *Spectrum) Len() int { return len(s.Omega) }

// Clone returns a deep copy.
func (s *Spectrum) Clone() *Spectrum {
	return &Spectrum{
		Omega: append([]float64(nil), s.Omega...),
		Power: append([]float64(nil), s.Power...),
	}
}

// TotalPower returns the sum of all power values.
func (s *Spectrum) TotalPower() float64 {
	return vecmath.Sum(s.Power)
}

// Normalize returns a new Spectrum scaled so that its total power is 1.
// It fails with ErrZeroPower when the total power is exactly zero, since the
// caller could not interpret the result.
func (s *Spectrum) Normalize() (*Spectrum, error) {
	total := s.TotalPower()
	if total == 0 {
		return nil, ErrZeroPower
	}

	power := make([]float64, len(s.Power))
	vecmath.ScaleBlock(power, s.Power, 1/total)

	return &Spectrum{
		Omega: append([]float64(nil), s.Omega...),
		Power: power,
	}, nil
}

// ApplyFilter returns a new Spectrum with power multiplied elementwise by the
// coefficient array alpha. It fails on shape mismatch.
func (s *Spectrum) ApplyFilter(alpha []float64) (*Spectrum, error) {
	if len(alpha) != len(s.Power) {
		return nil, fmt.Errorf("%w: filter has %d coefficients, spectrum has %d points",
			ErrShapeMismatch, len(alpha), len(s.Power))
	}

	power := make([]float64, len(s.Power))
	vecmath.MulBlock(power, s.Power, alpha)

	return &Spectrum{
		Omega: append([]float64(nil), s.Omega...),
		Power: power,
	}, nil
}

// BandPower returns the total power of all points whose frequency lies in the
// closed band. An empty selection yields 0.
func (s *Spectrum) BandPower(band Band) float64 {
	var sum float64
	for i, w := range s.Omega {
		if band.Contains(w) {
			sum += s.Power[i]
		}
	}
	return sum
}

// SameGrid reports whether two spectra share an exactly identical frequency
// grid. Equality is exact, not tolerance-based: grids compared by the
// detection layer are expected to come from the same analysis pipeline.
func SameGrid(a, b *Spectrum) bool {
	if len(a.Omega) != len(b.Omega) {
		return false
	}
	for i := range a.Omega {
		if a.Omega[i] != b.Omega[i] {
			return false
		}
	}
	return true
}
