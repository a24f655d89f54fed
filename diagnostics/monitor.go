package diagnostics

import (
	"fmt"

	"github.com/RobertPaulig/SpectralPhysics-Lab/material"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// HealthMonitor watches a single channel against a reference spectrum.
type HealthMonitor struct {
	signature *material.Signature
	threshold float64
}

// NewHealthMonitor wraps a healthy-state reference spectrum and an anomaly
// threshold on the L2 distance.
func NewHealthMonitor(reference *spectrum.Spectrum, threshold float64) *HealthMonitor {
	return &HealthMonitor{
		signature: material.NewSignature(reference),
		threshold: threshold,
	}
}

// Threshold returns the configured anomaly threshold.
func (m *HealthMonitor) Threshold() float64 { return m.threshold }

// Score returns the L2 distance between the current spectrum and the
// reference.
func (m *HealthMonitor) Score(current *spectrum.Spectrum) (float64, error) {
	return m.signature.DistanceL2(current)
}

// IsAnomalous reports whether the current spectrum deviates beyond the
// threshold.
func (m *HealthMonitor) IsAnomalous(current *spectrum.Spectrum) (bool, error) {
	return m.signature.IsAnomalous(current, m.threshold)
}

// BuildHealthProfile averages the training spectra of every channel into a
// reference signature. Channels with an empty training list are skipped;
// diverging frequency grids within one channel are an error.
func BuildHealthProfile(training map[string][]*spectrum.Spectrum) (*material.HealthProfile, error) {
	signatures := make(map[string]*material.Signature)
	for name, spectra := range training {
		if len(spectra) == 0 {
			continue
		}
		avg, err := AverageSpectrum(spectra)
		if err != nil {
			return nil, fmt.Errorf("diagnostics: channel %q: %w", name, err)
		}
		signatures[name] = material.NewSignature(avg)
	}
	return &material.HealthProfile{Signatures: signatures}, nil
}

// BuildFeatureSignatures averages each channel's training spectra and
// extracts the feature vector over that channel's Hz bands. Channels without
// training data or without configured bands are skipped.
func BuildFeatureSignatures(training map[string][]*spectrum.Spectrum, bands map[string][]spectrum.Band) (map[string]*material.FeatureSignature, error) {
	signatures := make(map[string]*material.FeatureSignature)
	for name, spectra := range training {
		channelBands, ok := bands[name]
		if !ok || len(spectra) == 0 {
			continue
		}
		avg, err := AverageSpectrum(spectra)
		if err != nil {
			return nil, fmt.Errorf("diagnostics: channel %q: %w", name, err)
		}
		signatures[name] = material.NewFeatureSignature(ExtractFeatures(avg, channelBands))
	}
	return signatures, nil
}
