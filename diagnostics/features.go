package diagnostics

import (
	"errors"
	"fmt"
	"math"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

var (
	// ErrNoSpectra reports an attempt to average an empty spectrum list.
	ErrNoSpectra = errors.New("diagnostics: cannot average empty list of spectra")
	// ErrGridMismatch reports training spectra that do not share a single
	// frequency grid.
	ErrGridMismatch = errors.New("diagnostics: spectra do not share a frequency grid")
)

// AverageSpectrum returns the elementwise mean of spectra that all share the
// exact frequency grid of the first one; it fails before any partial result
// when the grids diverge.
func AverageSpectrum(spectra []*spectrum.Spectrum) (*spectrum.Spectrum, error) {
	if len(spectra) == 0 {
		return nil, ErrNoSpectra
	}

	first := spectra[0]
	sum := make([]float64, first.Len())

	for i, s := range spectra {
		if !spectrum.SameGrid(first, s) {
			return nil, fmt.Errorf("%w: spectrum %d differs from the first", ErrGridMismatch, i)
		}
		for j, p := range s.Power {
			sum[j] += p
		}
	}

	for j := range sum {
		sum[j] /= float64(len(spectra))
	}
	return spectrum.New(first.Omega, sum)
}

// BandPowerHz sums the power of all spectral points whose frequency, in Hz,
// lies in the closed band. The spectrum carries angular frequencies; the
// band is specified in Hz.
func BandPowerHz(s *spectrum.Spectrum, band spectrum.Band) float64 {
	var sum float64
	for i, w := range s.Omega {
		hz := w / (2 * math.Pi)
		if band.Contains(hz) {
			sum += s.Power[i]
		}
	}
	return sum
}

// SpectralEntropy returns the Shannon entropy of the normalized power
// distribution, ignoring zero bins. A zero-power spectrum has entropy 0.
func SpectralEntropy(s *spectrum.Spectrum) float64 {
	total := s.TotalPower()
	if total == 0 {
		return 0
	}

	var h float64
	for _, p := range s.Power {
		if p <= 0 {
			continue
		}
		q := p / total
		h -= q * math.Log(q)
	}
	return h
}

// ExtractFeatures builds the feature vector
// [band power 1, ..., band power n, spectral entropy] for the given Hz
// analysis bands.
func ExtractFeatures(s *spectrum.Spectrum, bands []spectrum.Band) []float64 {
	features := make([]float64, 0, len(bands)+1)
	for _, b := range bands {
		features = append(features, BandPowerHz(s, b))
	}
	return append(features, SpectralEntropy(s))
}
