package storage

import (
	"fmt"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// SaveSpectrum writes a spectrum as a zip archive with omega and power npy
// members.
func SaveSpectrum(path string, s *spectrum.Spectrum) error {
	a, err := newArchiveWriter(path)
	if err != nil {
		return fmt.Errorf("storage: saving spectrum %s: %w", path, err)
	}
	if err := a.putArray("omega", s.Omega); err != nil {
		a.Close()
		return fmt.Errorf("storage: saving spectrum %s: %w", path, err)
	}
	if err := a.putArray("power", s.Power); err != nil {
		a.Close()
		return fmt.Errorf("storage: saving spectrum %s: %w", path, err)
	}
	return a.Close()
}

// LoadSpectrum reads a spectrum archive written by SaveSpectrum.
func LoadSpectrum(path string) (*spectrum.Spectrum, error) {
	a, err := openArchive(path)
	if err != nil {
		return nil, fmt.Errorf("%w: spectrum %s: %v", ErrCannotLoad, path, err)
	}
	defer a.Close()

	var omega, power []float64
	if err := a.getArray("omega", &omega); err != nil {
		return nil, fmt.Errorf("%w: spectrum %s: %v", ErrCannotLoad, path, err)
	}
	if err := a.getArray("power", &power); err != nil {
		return nil, fmt.Errorf("%w: spectrum %s: %v", ErrCannotLoad, path, err)
	}

	s, err := spectrum.New(omega, power)
	if err != nil {
		return nil, fmt.Errorf("%w: spectrum %s: %v", ErrCannotLoad, path, err)
	}
	return s, nil
}
