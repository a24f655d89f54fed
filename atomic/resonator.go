package atomic

import (
	"errors"
	"fmt"
	"math"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

var (
	// ErrInvalidLine reports a spectral line with a non-finite frequency or
	// weight.
	ErrInvalidLine = errors.New("atomic: line values must be finite")
)

// DefaultFreqTol is the relative frequency tolerance under which two lines
// are considered resonant.
const DefaultFreqTol = 0.05

// Line is one discrete spectral line of a resonator: an angular frequency
// and its weight.
type Line struct {
	Omega  float64
	Weight float64
}

// Resonator is a toy atom: a named set of spectral lines and the number of
// bonds the atom sustains. A Resonator is immutable once built.
type Resonator struct {
	name     string
	lines    *spectrum.Spectrum
	maxBonds int
}

// NewResonator builds a resonator from its spectral lines. An empty line
// list is allowed and yields an atom that never resonates.
func NewResonator(name string, lines []Line, maxBonds int) (*Resonator, error) {
	omega := make([]float64, len(lines))
	power := make([]float64, len(lines))
	for i, l := range lines {
		if math.IsNaN(l.Omega) || math.IsInf(l.Omega, 0) ||
			math.IsNaN(l.Weight) || math.IsInf(l.Weight, 0) {
			return nil, fmt.Errorf("%w: line %d of %q", ErrInvalidLine, i, name)
		}
		omega[i] = l.Omega
		power[i] = l.Weight
	}
	s, err := spectrum.New(omega, power)
	if err != nil {
		return nil, err
	}
	return &Resonator{name: name, lines: s, maxBonds: maxBonds}, nil
}

// Name returns the atom's name.
func (r *Resonator) Name() string { return r.name }

// MaxBonds returns how many bonds the atom sustains.
func (r *Resonator) MaxBonds() int { return r.maxBonds }

// Spectrum returns the atom's line spectrum as a fresh copy.
func (r *Resonator) Spectrum() *spectrum.Spectrum {
	return r.lines.Clone()
}

// NormalizedSpectrum returns the line spectrum scaled to unit total weight.
// It fails when the total weight is zero.
func (r *Resonator) NormalizedSpectrum() (*spectrum.Spectrum, error) {
	return r.lines.Normalize()
}

// Overlap scores the resonant compatibility of two atoms in [0, 1]. Every
// pair of lines whose frequencies differ by less than freqTol times their
// average contributes the smaller of the two normalized weights; the sum is
// capped at 1. Atoms without lines, or with zero total weight, score 0.
func Overlap(a, b *Resonator, freqTol float64) float64 {
	if a.lines.Len() == 0 || b.lines.Len() == 0 {
		return 0
	}
	specA, err := a.NormalizedSpectrum()
	if err != nil {
		return 0
	}
	specB, err := b.NormalizedSpectrum()
	if err != nil {
		return 0
	}

	var score float64
	for i, wa := range specA.Omega {
		for j, wb := range specB.Omega {
			avg := (wa + wb) / 2
			if avg == 0 {
				continue
			}
			if math.Abs(wa-wb) < freqTol*avg {
				score += math.Min(specA.Power[i], specB.Power[j])
			}
		}
	}
	return math.Min(score, 1)
}

// CanBond reports whether a stable bond between the atoms is possible: both
// must have bonding capacity left and their overlap must reach the
// threshold.
func CanBond(a, b *Resonator, freqTol, threshold float64) bool {
	if a.maxBonds <= 0 || b.maxBonds <= 0 {
		return false
	}
	return Overlap(a, b, freqTol) >= threshold
}
