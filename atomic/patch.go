package atomic

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// ErrWeightShape reports a patch whose weight list does not match its atoms.
var ErrWeightShape = errors.New("atomic: one weight per atom required")

// MaterialPatch is a surface region modeled as a weighted mixture of atoms.
type MaterialPatch struct {
	Atoms   []*Resonator
	Weights []float64
}

// NewMaterialPatch builds a patch over the given atoms and mixture weights.
func NewMaterialPatch(atoms []*Resonator, weights []float64) (*MaterialPatch, error) {
	if len(atoms) != len(weights) {
		return nil, fmt.Errorf("%w: %d atoms, %d weights",
			ErrWeightShape, len(atoms), len(weights))
	}
	return &MaterialPatch{
		Atoms:   append([]*Resonator(nil), atoms...),
		Weights: append([]float64(nil), weights...),
	}, nil
}

// SurfaceSpectrum merges the atoms' lines into one spectrum, scaling each
// atom's weights by its mixture fraction. Lines are sorted by frequency;
// coinciding frequencies stay as separate points.
func (p *MaterialPatch) SurfaceSpectrum() (*spectrum.Spectrum, error) {
	if len(p.Atoms) != len(p.Weights) {
		return nil, fmt.Errorf("%w: %d atoms, %d weights",
			ErrWeightShape, len(p.Atoms), len(p.Weights))
	}

	var omega, power []float64
	for i, atom := range p.Atoms {
		s := atom.Spectrum()
		for j := range s.Omega {
			omega = append(omega, s.Omega[j])
			power = append(power, s.Power[j]*p.Weights[i])
		}
	}

	idx := make([]int, len(omega))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return omega[idx[a]] < omega[idx[b]] })

	sortedOmega := make([]float64, len(omega))
	sortedPower := make([]float64, len(power))
	for i, j := range idx {
		sortedOmega[i] = omega[j]
		sortedPower[i] = power[j]
	}
	return spectrum.New(sortedOmega, sortedPower)
}

// EffectiveCoupling estimates how strongly a patch resonates with a medium:
// the patch's line power inside the frequency band times the mean LDOS over
// the map. A patch with no lines in the band couples with strength 0.
func EffectiveCoupling(ldos mat.Matrix, patch *MaterialPatch, band spectrum.Band) (float64, error) {
	surface, err := patch.SurfaceSpectrum()
	if err != nil {
		return 0, err
	}

	patchPower := surface.BandPower(band)
	if patchPower == 0 {
		return 0, nil
	}

	r, c := ldos.Dims()
	if r == 0 || c == 0 {
		return 0, nil
	}
	avg := mat.Sum(ldos) / float64(r*c)
	return patchPower * avg, nil
}
