package medium

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewChainValidation(t *testing.T) {
	if _, err := NewChain(0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("n=0: expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewChain(3, WithMass(0)); !errors.Is(err, ErrInvalidMass) {
		t.Fatalf("m=0: expected ErrInvalidMass, got %v", err)
	}
	if _, err := NewChain(3, WithCoupling(-1)); !errors.Is(err, ErrInvalidStiffness) {
		t.Fatalf("k=-1: expected ErrInvalidStiffness, got %v", err)
	}
	if _, err := NewChain(3, WithDamping(-0.1)); !errors.Is(err, ErrInvalidDamping) {
		t.Fatalf("gamma=-0.1: expected ErrInvalidDamping, got %v", err)
	}
	if _, err := NewChain(3, WithMassProfile([]float64{1, 2})); !errors.Is(err, ErrProfileLength) {
		t.Fatalf("short mass profile: expected ErrProfileLength, got %v", err)
	}
	if _, err := NewChain(3, WithCouplingProfile([]float64{1})); !errors.Is(err, ErrProfileLength) {
		t.Fatalf("short coupling profile: expected ErrProfileLength, got %v", err)
	}
	if _, err := NewChain(1, WithCouplingProfile([]float64{})); !errors.Is(err, ErrProfileLength) {
		t.Fatalf("profile on single node: expected ErrProfileLength, got %v", err)
	}
	if _, err := NewChain(3, WithMassProfile([]float64{})); !errors.Is(err, ErrProfileLength) {
		t.Fatalf("empty mass profile: expected ErrProfileLength, got %v", err)
	}
	if _, err := NewChain(3, WithCouplingProfile(nil)); !errors.Is(err, ErrProfileLength) {
		t.Fatalf("empty coupling profile: expected ErrProfileLength, got %v", err)
	}
	if _, err := NewChain(3, WithMassProfile([]float64{1, -1, 1})); !errors.Is(err, ErrInvalidMass) {
		t.Fatalf("negative mass in profile: expected ErrInvalidMass, got %v", err)
	}
}

func TestChainStiffnessUniform(t *testing.T) {
	chain, err := NewChain(5, WithCoupling(2))
	if err != nil {
		t.Fatal(err)
	}

	k := chain.StiffnessMatrix()
	r, c := k.Dims()
	if r != 5 || c != 5 {
		t.Fatalf("K dims = (%d, %d), want (5, 5)", r, c)
	}

	for i := 0; i < 5; i++ {
		if got := k.At(i, i); !almostEqual(got, 4, tolerance) {
			t.Fatalf("K[%d,%d] = %f, want 4", i, i, got)
		}
		if i < 4 {
			if got := k.At(i, i+1); !almostEqual(got, -2, tolerance) {
				t.Fatalf("K[%d,%d] = %f, want -2", i, i+1, got)
			}
		}
	}
}

func TestChainStiffnessSymmetric(t *testing.T) {
	chain, err := NewChain(7, WithCouplingProfile([]float64{1, 2, 3, 4, 5, 6}))
	if err != nil {
		t.Fatal(err)
	}

	k := chain.StiffnessMatrix()
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			if !almostEqual(k.At(i, j), k.At(j, i), tolerance) {
				t.Fatalf("K not symmetric at (%d, %d)", i, j)
			}
		}
	}
}

func TestChainBoundaryReplication(t *testing.T) {
	// Profile [2, 5] on 3 nodes: wall links replicate the edge values, so
	// the links along the chain are [2, 2, 5, 5].
	chain, err := NewChain(3, WithCouplingProfile([]float64{2, 5}))
	if err != nil {
		t.Fatal(err)
	}

	k := chain.StiffnessMatrix()
	wantDiag := []float64{4, 7, 10}
	for i, w := range wantDiag {
		if got := k.At(i, i); !almostEqual(got, w, tolerance) {
			t.Fatalf("K[%d,%d] = %f, want %f", i, i, got, w)
		}
	}
	if got := k.At(0, 1); !almostEqual(got, -2, tolerance) {
		t.Fatalf("K[0,1] = %f, want -2", got)
	}
	if got := k.At(1, 2); !almostEqual(got, -5, tolerance) {
		t.Fatalf("K[1,2] = %f, want -5", got)
	}
}

func TestChainTwoNodeReference(t *testing.T) {
	// n=2, k=1, m=1: K = [[2,-1],[-1,2]], eigenvalues 1 and 3, so the
	// eigenfrequencies are 1 and sqrt(3).
	chain, err := NewChain(2)
	if err != nil {
		t.Fatal(err)
	}

	k := chain.StiffnessMatrix()
	want := [][]float64{{2, -1}, {-1, 2}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !almostEqual(k.At(i, j), want[i][j], tolerance) {
				t.Fatalf("K[%d,%d] = %f, want %f", i, j, k.At(i, j), want[i][j])
			}
		}
	}

	omega, _ := chain.Eigenmodes()
	if !almostEqual(omega[0], 1, tolerance) {
		t.Fatalf("omega[0] = %f, want 1", omega[0])
	}
	if !almostEqual(omega[1], math.Sqrt(3), tolerance) {
		t.Fatalf("omega[1] = %f, want sqrt(3)", omega[1])
	}
}

func TestChainEigenmodesSortedNonNegative(t *testing.T) {
	chain, err := NewChain(10, WithCoupling(3), WithMass(0.5))
	if err != nil {
		t.Fatal(err)
	}

	omega, modes := chain.Eigenmodes()
	if len(omega) != 10 {
		t.Fatalf("expected 10 frequencies, got %d", len(omega))
	}
	r, c := modes.Dims()
	if r != 10 || c != 10 {
		t.Fatalf("modes dims = (%d, %d), want (10, 10)", r, c)
	}

	for i, w := range omega {
		if w < 0 {
			t.Fatalf("omega[%d] = %f < 0", i, w)
		}
		if i > 0 && omega[i-1] > w {
			t.Fatalf("frequencies not ascending at %d: %f > %f", i, omega[i-1], w)
		}
	}
}

func TestChainMassOrthonormality(t *testing.T) {
	chain, err := NewChain(6,
		WithCouplingProfile([]float64{1, 2, 1.5, 0.5, 3}),
		WithMassProfile([]float64{1, 2, 0.5, 1, 1.5, 2}))
	if err != nil {
		t.Fatal(err)
	}

	_, modes := chain.Eigenmodes()

	var mtm mat.Dense
	mtm.Product(modes.T(), chain.MassMatrix(), modes)

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if !almostEqual(mtm.At(i, j), want, 1e-8) {
				t.Fatalf("(V^T M V)[%d,%d] = %f, want %f", i, j, mtm.At(i, j), want)
			}
		}
	}
}

func TestChainStiffnessMonotonicity(t *testing.T) {
	base, _ := NewChain(8)
	stiffer, _ := NewChain(8, WithCoupling(2))
	heavier, _ := NewChain(8, WithMass(2))

	w0, _ := base.Eigenmodes()
	w1, _ := stiffer.Eigenmodes()
	w2, _ := heavier.Eigenmodes()

	for i := range w0 {
		if w1[i] <= w0[i] {
			t.Fatalf("stiffer chain not uniformly faster at mode %d: %f <= %f", i, w1[i], w0[i])
		}
		if w2[i] >= w0[i] {
			t.Fatalf("heavier chain not uniformly slower at mode %d: %f >= %f", i, w2[i], w0[i])
		}
	}
}

func TestChainAccessors(t *testing.T) {
	springs := []float64{1, 2, 3}
	masses := []float64{1, 2, 3, 4}

	chain, err := NewChain(4,
		WithCouplingProfile(springs),
		WithMassProfile(masses),
		WithDamping(0.25))
	if err != nil {
		t.Fatal(err)
	}

	if chain.N() != 4 {
		t.Fatalf("N = %d, want 4", chain.N())
	}
	if chain.Damping() != 0.25 {
		t.Fatalf("Damping = %f, want 0.25", chain.Damping())
	}

	gotK := chain.InternalSprings()
	gotM := chain.Masses()
	for i := range springs {
		if gotK[i] != springs[i] {
			t.Fatalf("InternalSprings[%d] = %f, want %f", i, gotK[i], springs[i])
		}
	}
	for i := range masses {
		if gotM[i] != masses[i] {
			t.Fatalf("Masses[%d] = %f, want %f", i, gotM[i], masses[i])
		}
	}

	// Accessors return copies.
	gotK[0] = 99
	gotM[0] = 99
	if chain.InternalSprings()[0] != 1 || chain.Masses()[0] != 1 {
		t.Fatal("accessors expose internal state")
	}
}
