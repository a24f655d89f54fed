package atomic

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewResonator(t *testing.T) {
	atom, err := NewResonator("Test", []Line{{10, 1}, {20, 0.5}}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if atom.Name() != "Test" || atom.MaxBonds() != 3 {
		t.Fatalf("name=%q maxBonds=%d, want Test/3", atom.Name(), atom.MaxBonds())
	}
	s := atom.Spectrum()
	if s.Len() != 2 || s.Omega[0] != 10 || s.Omega[1] != 20 {
		t.Fatalf("unexpected line spectrum %v", s.Omega)
	}
}

func TestNewResonatorRejectsNonFinite(t *testing.T) {
	if _, err := NewResonator("Bad", []Line{{math.NaN(), 1}}, 1); !errors.Is(err, ErrInvalidLine) {
		t.Fatalf("expected ErrInvalidLine, got %v", err)
	}
}

func TestResonatorSpectrumIsCopy(t *testing.T) {
	atom, _ := NewResonator("H", []Line{{1, 1}}, 1)
	s := atom.Spectrum()
	s.Power[0] = 99
	if atom.Spectrum().Power[0] != 1 {
		t.Fatal("Spectrum exposed internal state")
	}
}

func TestOverlapIdentical(t *testing.T) {
	h := Registry()["H"]
	if score := Overlap(h, h, 0.1); score < 0.9 {
		t.Fatalf("H-H overlap = %f, want ~1", score)
	}
}

func TestOverlapDisjoint(t *testing.T) {
	h := Registry()["H"]
	x, _ := NewResonator("X", []Line{{100, 1}}, 1)
	if score := Overlap(h, x, 0.1); score != 0 {
		t.Fatalf("disjoint overlap = %f, want 0", score)
	}
}

func TestOverlapEmptyAtom(t *testing.T) {
	h := Registry()["H"]
	empty, _ := NewResonator("E", nil, 1)
	if score := Overlap(h, empty, 0.1); score != 0 {
		t.Fatalf("overlap with empty atom = %f, want 0", score)
	}
}

func TestOverlapCappedAtOne(t *testing.T) {
	// Many close lines against a single line can accumulate past 1 before
	// the cap.
	a, _ := NewResonator("A", []Line{{1.0, 1}}, 1)
	b, _ := NewResonator("B", []Line{{1.0, 1}, {1.01, 1}, {0.99, 1}}, 1)
	if score := Overlap(a, b, 0.1); score > 1 {
		t.Fatalf("overlap = %f, must not exceed 1", score)
	}
}

func TestCanBond(t *testing.T) {
	reg := Registry()
	h, o, c := reg["H"], reg["O"], reg["C"]

	if !CanBond(h, o, 0.1, 0.1) {
		t.Fatal("H and O should bond")
	}
	if !CanBond(c, h, 0.1, 0.1) {
		t.Fatal("C and H should bond")
	}
	if !CanBond(c, o, 0.1, 0.1) {
		t.Fatal("C and O should bond")
	}

	// A full-shell atom never bonds, matching lines or not.
	he, _ := NewResonator("He", []Line{{1, 1}}, 0)
	if CanBond(he, h, 0.1, 0.1) {
		t.Fatal("atom with zero bonding capacity must not bond")
	}
}

func TestRegistryReturnsFreshAtoms(t *testing.T) {
	first := Registry()
	second := Registry()
	if first["H"] == second["H"] {
		t.Fatal("Registry must build fresh resonators per call")
	}
	if len(first) != 3 {
		t.Fatalf("registry size = %d, want 3", len(first))
	}
}
