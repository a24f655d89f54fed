package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// SimulatePulse integrates the free chain's response to a unit impulse on
// the surface node and returns the time axis and the surface displacement
// x[0] at each step. Integration is semi-implicit Euler; the chain ends are
// free, so the pulse reflects instead of draining into walls.
func SimulatePulse(m *LayeredMedium, dt float64, nSteps int) (t, signal []float64, err error) {
	if dt <= 0 {
		return nil, nil, fmt.Errorf("%w: dt = %v", ErrInvalidStep, dt)
	}
	if nSteps <= 0 {
		return nil, nil, fmt.Errorf("%w: nSteps = %d", ErrInvalidStep, nSteps)
	}

	masses := m.nodeMasses()
	springs := m.springStiffness()
	n := len(masses)

	x := make([]float64, n)
	v := make([]float64, n)
	forces := make([]float64, n)

	// Unit impulse on the surface node.
	v[0] = 1 / masses[0]

	t = make([]float64, nSteps)
	signal = make([]float64, nSteps)

	for step := 0; step < nSteps; step++ {
		t[step] = float64(step) * dt
		signal[step] = x[0]

		for i := range forces {
			forces[i] = 0
		}
		for i, k := range springs {
			f := k * (x[i+1] - x[i])
			forces[i] += f
			forces[i+1] -= f
		}

		for i := range x {
			v[i] += forces[i] / masses[i] * dt
			x[i] += v[i] * dt
		}
	}
	return t, signal, nil
}

// ResponseFeatures condenses a pulse response into the feature vector
// [energy, max amplitude, mean amplitude, standard deviation,
// zero crossings].
func ResponseFeatures(signal []float64) []float64 {
	if len(signal) == 0 {
		return []float64{0, 0, 0, 0, 0}
	}

	var energy, meanAbs, maxAbs float64
	for _, s := range signal {
		energy += s * s
		a := math.Abs(s)
		meanAbs += a
		if a > maxAbs {
			maxAbs = a
		}
	}
	meanAbs /= float64(len(signal))

	std := stat.PopStdDev(signal, nil)

	var crossings float64
	for i := 1; i < len(signal); i++ {
		if math.Signbit(signal[i]) != math.Signbit(signal[i-1]) {
			crossings++
		}
	}

	return []float64{energy, maxAbs, meanAbs, std, crossings}
}
