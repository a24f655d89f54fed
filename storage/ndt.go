package storage

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/ndt"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// SaveNDTProfile archives an NDT baseline: the mean and std LDOS maps plus
// the frequency window as a two-element array.
func SaveNDTProfile(path string, p *ndt.Profile) error {
	a, err := newArchiveWriter(path)
	if err != nil {
		return fmt.Errorf("storage: saving ndt profile %s: %w", path, err)
	}
	fail := func(err error) error {
		a.Close()
		return fmt.Errorf("storage: saving ndt profile %s: %w", path, err)
	}

	if err := a.putArray("ldos_mean", p.Mean); err != nil {
		return fail(err)
	}
	if err := a.putArray("ldos_std", p.Std); err != nil {
		return fail(err)
	}
	if err := a.putArray("freq_window", []float64{p.Band.Min, p.Band.Max}); err != nil {
		return fail(err)
	}
	return a.Close()
}

// LoadNDTProfile reads an archive written by SaveNDTProfile.
func LoadNDTProfile(path string) (*ndt.Profile, error) {
	a, err := openArchive(path)
	if err != nil {
		return nil, fmt.Errorf("%w: ndt profile %s: %v", ErrCannotLoad, path, err)
	}
	defer a.Close()

	var mean, std mat.Dense
	if err := a.getArray("ldos_mean", &mean); err != nil {
		return nil, fmt.Errorf("%w: ndt profile %s: %v", ErrCannotLoad, path, err)
	}
	if err := a.getArray("ldos_std", &std); err != nil {
		return nil, fmt.Errorf("%w: ndt profile %s: %v", ErrCannotLoad, path, err)
	}

	var window []float64
	if err := a.getArray("freq_window", &window); err != nil {
		return nil, fmt.Errorf("%w: ndt profile %s: %v", ErrCannotLoad, path, err)
	}
	if len(window) != 2 {
		return nil, fmt.Errorf("%w: ndt profile %s: freq_window has %d values, want 2",
			ErrCannotLoad, path, len(window))
	}

	return &ndt.Profile{
		Band: spectrum.Band{Min: window[0], Max: window[1]},
		Mean: &mean,
		Std:  &std,
	}, nil
}
