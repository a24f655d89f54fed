package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

var (
	// ErrGridMismatch reports spectra whose frequency grids are not exactly
	// identical. Grids compared here are expected to come from the same
	// analysis pipeline, so equality is exact rather than tolerance-based.
	ErrGridMismatch = errors.New("material: frequency grids do not match")
	// ErrFeatureShape reports feature vectors of different lengths.
	ErrFeatureShape = errors.New("material: feature vector shape mismatch")
)

// Signature is the spectral fingerprint of a material or machine part in its
// reference ("healthy") state.
type Signature struct {
	Reference *spectrum.Spectrum
}

// NewSignature wraps a reference spectrum.
func NewSignature(reference *spectrum.Spectrum) *Signature {
	return &Signature{Reference: reference}
}

// DistanceL2 returns the Euclidean distance between the normalized reference
// and the normalized observation. Normalizing first makes the metric
// sensitive to spectral shape only: uniform amplitude rescaling cancels out.
//
// Fails with ErrGridMismatch when the frequency grids differ, and propagates
// spectrum.ErrZeroPower when either side cannot be normalized.
func (s *Signature) DistanceL2(other *spectrum.Spectrum) (float64, error) {
	if !spectrum.SameGrid(s.Reference, other) {
		return 0, fmt.Errorf("%w: reference has %d points, observation has %d",
			ErrGridMismatch, s.Reference.Len(), other.Len())
	}

	ref, err := s.Reference.Normalize()
	if err != nil {
		return 0, err
	}
	obs, err := other.Normalize()
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := range ref.Power {
		d := ref.Power[i] - obs.Power[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// DistanceCosine returns 1 - clip(cosine similarity, 0, 1) of the raw
// (non-normalized) power vectors. When either vector has zero norm the
// similarity is undefined and the distance is 1, the maximal-dissimilarity
// convention for degenerate input.
func (s *Signature) DistanceCosine(other *spectrum.Spectrum) (float64, error) {
	if !spectrum.SameGrid(s.Reference, other) {
		return 0, fmt.Errorf("%w: reference has %d points, observation has %d",
			ErrGridMismatch, s.Reference.Len(), other.Len())
	}

	a := s.Reference.Power
	b := other.Power

	normA := math.Sqrt(vecmath.DotProduct(a, a))
	normB := math.Sqrt(vecmath.DotProduct(b, b))
	if normA == 0 || normB == 0 {
		return 1, nil
	}

	cos := vecmath.DotProduct(a, b) / (normA * normB)
	if cos < 0 {
		cos = 0
	}
	if cos > 1 {
		cos = 1
	}
	return 1 - cos, nil
}

// IsAnomalous reports whether the L2 distance to the observation exceeds the
// threshold.
func (s *Signature) IsAnomalous(other *spectrum.Spectrum, threshold float64) (bool, error) {
	d, err := s.DistanceL2(other)
	if err != nil {
		return false, err
	}
	return d > threshold, nil
}

// FeatureSignature is a reference point in feature space.
type FeatureSignature struct {
	Reference []float64
}

// NewFeatureSignature wraps a reference feature vector, copying it.
func NewFeatureSignature(reference []float64) *FeatureSignature {
	return &FeatureSignature{Reference: append([]float64(nil), reference...)}
}

// DistanceL2 returns the Euclidean distance to another feature vector of the
// same shape.
func (s *FeatureSignature) DistanceL2(features []float64) (float64, error) {
	if len(features) != len(s.Reference) {
		return 0, fmt.Errorf("%w: reference has %d features, observation has %d",
			ErrFeatureShape, len(s.Reference), len(features))
	}

	var sum float64
	for i := range s.Reference {
		d := s.Reference[i] - features[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
