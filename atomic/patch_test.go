package atomic

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

func TestNewMaterialPatchValidation(t *testing.T) {
	h := Registry()["H"]
	if _, err := NewMaterialPatch([]*Resonator{h}, []float64{0.5, 0.5}); !errors.Is(err, ErrWeightShape) {
		t.Fatalf("expected ErrWeightShape, got %v", err)
	}
}

func TestSurfaceSpectrum(t *testing.T) {
	reg := Registry()
	patch, err := NewMaterialPatch(
		[]*Resonator{reg["H"], reg["O"]},
		[]float64{0.5, 0.5},
	)
	if err != nil {
		t.Fatal(err)
	}

	s, err := patch.SurfaceSpectrum()
	if err != nil {
		t.Fatal(err)
	}

	// H contributes one line, O three.
	if s.Len() != 4 {
		t.Fatalf("line count = %d, want 4", s.Len())
	}
	for i := 1; i < s.Len(); i++ {
		if s.Omega[i] < s.Omega[i-1] {
			t.Fatalf("lines not sorted by frequency: %v", s.Omega)
		}
	}

	// The 0.9 line carries O's weight 0.5 scaled by the mixture fraction.
	if !almostEqual(s.Omega[0], 0.9, tolerance) || !almostEqual(s.Power[0], 0.25, tolerance) {
		t.Fatalf("first line = (%f, %f), want (0.9, 0.25)", s.Omega[0], s.Power[0])
	}
}

func TestSurfaceSpectrumEmptyPatch(t *testing.T) {
	patch, err := NewMaterialPatch(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err := patch.SurfaceSpectrum()
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Fatalf("empty patch produced %d lines", s.Len())
	}
}

func TestEffectiveCoupling(t *testing.T) {
	reg := Registry()
	patch, _ := NewMaterialPatch([]*Resonator{reg["H"]}, []float64{1})

	ldos := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	// H's single unit line at omega 1 falls inside the band; mean LDOS is 2.5.
	got, err := EffectiveCoupling(ldos, patch, spectrum.Band{Min: 0.5, Max: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 2.5, tolerance) {
		t.Fatalf("coupling = %f, want 2.5", got)
	}

	// No lines in the band.
	got, err = EffectiveCoupling(ldos, patch, spectrum.Band{Min: 10, Max: 20})
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Fatalf("out-of-band coupling = %f, want 0", got)
	}
}
