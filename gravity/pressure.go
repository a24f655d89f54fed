package gravity

import (
	"errors"
	"fmt"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

var (
	// ErrAlphaLeftShape reports a left transparency profile whose length
	// does not match the background spectrum.
	ErrAlphaLeftShape = errors.New("gravity: alpha_left length must match spectrum")
	// ErrAlphaRightShape reports a right transparency profile whose length
	// does not match the background spectrum.
	ErrAlphaRightShape = errors.New("gravity: alpha_right length must match spectrum")
)

// PressureDifference returns the net spectral pressure on a body whose left
// and right sides transmit the background spectrum with per-frequency
// transparencies alphaLeft and alphaRight:
//
//	Δp = Σ power[i] · (alphaRight[i] − alphaLeft[i])
//
// A positive result pushes the body to the right. Both profiles must have
// one value per spectral point.
func PressureDifference(background *spectrum.Spectrum, alphaLeft, alphaRight []float64) (float64, error) {
	if len(alphaLeft) != background.Len() {
		return 0, fmt.Errorf("%w: %d values for %d points",
			ErrAlphaLeftShape, len(alphaLeft), background.Len())
	}
	if len(alphaRight) != background.Len() {
		return 0, fmt.Errorf("%w: %d values for %d points",
			ErrAlphaRightShape, len(alphaRight), background.Len())
	}

	var dp float64
	for i, p := range background.Power {
		dp += p * (alphaRight[i] - alphaLeft[i])
	}
	return dp, nil
}

// BandPressureDifference restricts the pressure balance to spectral points
// inside the band; points outside contribute nothing to either side.
func BandPressureDifference(background *spectrum.Spectrum, alphaLeft, alphaRight []float64, band spectrum.Band) (float64, error) {
	if len(alphaLeft) != background.Len() {
		return 0, fmt.Errorf("%w: %d values for %d points",
			ErrAlphaLeftShape, len(alphaLeft), background.Len())
	}
	if len(alphaRight) != background.Len() {
		return 0, fmt.Errorf("%w: %d values for %d points",
			ErrAlphaRightShape, len(alphaRight), background.Len())
	}

	var dp float64
	for i, p := range background.Power {
		if !band.Contains(background.Omega[i]) {
			continue
		}
		dp += p * (alphaRight[i] - alphaLeft[i])
	}
	return dp, nil
}
