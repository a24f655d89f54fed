package material

import (
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// HealthProfile is the trained multi-channel baseline of a machine: one
// spectral Signature per channel, plus optional feature-space signatures.
//
// Score and Anomalies only consider channels present on both sides of the
// comparison; channels missing from the current observation or the threshold
// map are silently omitted from the result. This is deliberate (partial
// observations are routine), though it can mask configuration mistakes.
type HealthProfile struct {
	Signatures        map[string]*Signature
	FeatureSignatures map[string]*FeatureSignature
}

// Score returns the per-channel L2 distance between the profile and the
// current observation for every channel present in both maps.
func (p *HealthProfile) Score(current map[string]*spectrum.Spectrum) (map[string]float64, error) {
	scores := make(map[string]float64)
	for name, sig := range p.Signatures {
		obs, ok := current[name]
		if !ok {
			continue
		}
		d, err := sig.DistanceL2(obs)
		if err != nil {
			return nil, err
		}
		scores[name] = d
	}
	return scores, nil
}

// ScoreFeatures returns the per-channel feature-space L2 distance for every
// channel with both a feature signature and a current feature vector. The
// caller extracts features first (see diagnostics.ExtractFeatures), which
// keeps the dependency graph layered.
func (p *HealthProfile) ScoreFeatures(current map[string][]float64) (map[string]float64, error) {
	scores := make(map[string]float64)
	for name, sig := range p.FeatureSignatures {
		feats, ok := current[name]
		if !ok {
			continue
		}
		d, err := sig.DistanceL2(feats)
		if err != nil {
			return nil, err
		}
		scores[name] = d
	}
	return scores, nil
}

// Anomalies returns the per-channel anomaly verdict for every channel present
// in the profile, the current observation and the threshold map.
func (p *HealthProfile) Anomalies(current map[string]*spectrum.Spectrum, thresholds map[string]float64) (map[string]bool, error) {
	verdicts := make(map[string]bool)
	for name, sig := range p.Signatures {
		obs, ok := current[name]
		if !ok {
			continue
		}
		threshold, ok := thresholds[name]
		if !ok {
			continue
		}
		anomalous, err := sig.IsAnomalous(obs, threshold)
		if err != nil {
			return nil, err
		}
		verdicts[name] = anomalous
	}
	return verdicts, nil
}
