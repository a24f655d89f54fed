package geo

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// ErrShapeMismatch reports a target signal whose length differs from the
// requested simulation length.
var ErrShapeMismatch = errors.New("geo: target signal and time axis must match")

// InvertLayerThickness recovers the thickness of the top layer from an
// observed pulse response. Density and stiffness of the top layer are known,
// as is the stack below it; the search runs over [guess/2, 2·guess] and
// minimizes the squared misfit between the simulated and the target surface
// signal.
func InvertLayerThickness(target, t []float64, density, stiffness, guess float64, below []Layer, dx float64) (float64, error) {
	if len(target) != len(t) || len(t) < 2 {
		return 0, fmt.Errorf("%w: %d samples, %d time points",
			ErrShapeMismatch, len(target), len(t))
	}
	if guess <= 0 {
		return 0, fmt.Errorf("%w: thickness guess = %v", ErrInvalidLayer, guess)
	}

	dt := t[1] - t[0]
	lo, hi := 0.5*guess, 2*guess

	clamp := func(h float64) float64 {
		if h < lo {
			return lo
		}
		if h > hi {
			return hi
		}
		return h
	}

	objective := func(h float64) float64 {
		layers := append([]Layer{{Thickness: h, Density: density, Stiffness: stiffness}}, below...)
		m, err := NewLayeredMedium(layers, dx)
		if err != nil {
			return inf
		}
		_, signal, err := SimulatePulse(m, dt, len(target))
		if err != nil {
			return inf
		}
		var misfit float64
		for i := range signal {
			d := signal[i] - target[i]
			misfit += d * d
		}
		return misfit
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 { return objective(clamp(x[0])) },
	}
	result, err := optimize.Minimize(problem, []float64{guess}, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, fmt.Errorf("geo: thickness inversion failed: %w", err)
	}
	return clamp(result.X[0]), nil
}

const inf = 1e300
