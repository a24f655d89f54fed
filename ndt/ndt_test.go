package ndt

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/medium"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func healthyGrid(t *testing.T) *medium.Grid {
	t.Helper()
	grid, err := medium.NewGrid(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	return grid
}

var wideBand = spectrum.Band{Min: 0, Max: 1e6}

func TestBuildProfileNoiseless(t *testing.T) {
	grid := healthyGrid(t)

	p, err := BuildProfile(grid, 10, wideBand)
	if err != nil {
		t.Fatal(err)
	}

	want, err := grid.LDOSMap(10, wideBand)
	if err != nil {
		t.Fatal(err)
	}

	ny, nx := p.Mean.Dims()
	if ny != 5 || nx != 5 {
		t.Fatalf("mean dims = (%d, %d), want (5, 5)", ny, nx)
	}

	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			if !almostEqual(p.Mean.At(i, j), want.At(i, j), tolerance) {
				t.Fatalf("mean[%d,%d] = %f, want %f", i, j, p.Mean.At(i, j), want.At(i, j))
			}
			if p.Std.At(i, j) != 0 {
				t.Fatalf("noiseless profile has std[%d,%d] = %f, want 0", i, j, p.Std.At(i, j))
			}
		}
	}
}

func TestBuildProfileWithNoiseIsDeterministic(t *testing.T) {
	grid := healthyGrid(t)

	a, err := BuildProfile(grid, 10, wideBand, WithSamples(4), WithMassNoise(0.05), WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildProfile(grid, 10, wideBand, WithSamples(4), WithMassNoise(0.05), WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}

	if !mat.EqualApprox(a.Mean, b.Mean, 0) || !mat.EqualApprox(a.Std, b.Std, 0) {
		t.Fatal("same seed produced different profiles")
	}

	if mat.Max(a.Std) <= 0 {
		t.Fatal("noisy multi-sample profile has zero std everywhere")
	}
}

func TestScoreStateSelfIsZero(t *testing.T) {
	grid := healthyGrid(t)

	p, err := BuildProfile(grid, 10, wideBand)
	if err != nil {
		t.Fatal(err)
	}

	scores, err := ScoreState(p, p.Mean, DefaultEpsilon)
	if err != nil {
		t.Fatal(err)
	}

	if got := mat.Max(scores); got != 0 {
		t.Fatalf("max score against own mean = %f, want 0", got)
	}
}

func TestScoreStateShapeMismatch(t *testing.T) {
	grid := healthyGrid(t)

	p, err := BuildProfile(grid, 10, wideBand)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ScoreState(p, mat.NewDense(2, 2, nil), DefaultEpsilon); !errors.Is(err, ErrMapShape) {
		t.Fatalf("expected ErrMapShape, got %v", err)
	}
}

func TestScoreStateZeroStdFallback(t *testing.T) {
	mean := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	p := &Profile{Band: wideBand, Mean: mean, Std: mat.NewDense(2, 2, nil)}

	current := mat.NewDense(2, 2, []float64{1, 1, 1, 1.5})
	scores, err := ScoreState(p, current, DefaultEpsilon)
	if err != nil {
		t.Fatal(err)
	}

	// All-zero std: raw absolute difference, no division.
	if !almostEqual(scores.At(1, 1), 0.5, tolerance) {
		t.Fatalf("fallback score = %f, want 0.5", scores.At(1, 1))
	}
}

func TestDefectLocalization(t *testing.T) {
	grid := healthyGrid(t)

	p, err := BuildProfile(grid, 25, wideBand)
	if err != nil {
		t.Fatal(err)
	}

	// Same grid with one node's mass set to 5x the default.
	heavy := grid.MassMap()
	heavy.Set(2, 2, 5)
	defective, err := grid.ReplaceMass(heavy)
	if err != nil {
		t.Fatal(err)
	}

	current, err := defective.LDOSMap(25, wideBand)
	if err != nil {
		t.Fatal(err)
	}

	scores, err := ScoreState(p, current, DefaultEpsilon)
	if err != nil {
		t.Fatal(err)
	}

	if scores.At(2, 2) <= 0 {
		t.Fatal("defect node scored zero")
	}

	// At the defect node the full-spectrum LDOS drops from 1/m to 1/(5m),
	// while every healthy node keeps LDOS 1/m exactly; a threshold just
	// under the defect score flags exactly that node.
	mask := DefectMask(scores, scores.At(2, 2)*0.99)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := i == 2 && j == 2
			if mask[i][j] != want {
				t.Fatalf("mask[%d][%d] = %v, want %v", i, j, mask[i][j], want)
			}
		}
	}
}

func TestDefectMaskThreshold(t *testing.T) {
	scores := mat.NewDense(2, 2, []float64{0.1, 0.9, 0.5, 0.5})
	mask := DefectMask(scores, 0.5)

	want := [][]bool{{false, true}, {false, false}}
	for i := range want {
		for j := range want[i] {
			if mask[i][j] != want[i][j] {
				t.Fatalf("mask[%d][%d] = %v, want %v", i, j, mask[i][j], want[i][j])
			}
		}
	}
}

func TestMapSignature(t *testing.T) {
	ldos := mat.NewDense(1, 5, []float64{1, 2, 3, 4, 5})
	sig := MapSignature(ldos)

	want := []float64{3, math.Sqrt(2), 5, 1, 3}
	if len(sig.Reference) != len(want) {
		t.Fatalf("feature count = %d, want %d", len(sig.Reference), len(want))
	}
	for i, w := range want {
		if !almostEqual(sig.Reference[i], w, tolerance) {
			t.Fatalf("feature[%d] = %f, want %f", i, sig.Reference[i], w)
		}
	}
}
