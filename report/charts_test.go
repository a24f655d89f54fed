package report

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

func TestRenderSpectrum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.html")
	s, _ := spectrum.New([]float64{1, 2, 3}, []float64{0.5, 2, 0.5})

	if err := RenderSpectrum(path, "test spectrum", s); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("rendered chart is empty")
	}
}

func TestRenderHeatMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ldos.html")
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	if err := RenderHeatMap(path, "ldos map", m); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("rendered chart is empty")
	}
}
