package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/RobertPaulig/SpectralPhysics-Lab/medium"
)

var (
	// ErrNoLayers reports a medium without layers.
	ErrNoLayers = errors.New("geo: at least one layer required")
	// ErrInvalidStep reports a non-positive discretization step.
	ErrInvalidStep = errors.New("geo: discretization step must be positive")
	// ErrInvalidLayer reports a layer with non-positive thickness, density
	// or stiffness.
	ErrInvalidLayer = errors.New("geo: layer parameters must be positive")
)

// Layer is one homogeneous stratum of a layered 1D medium.
type Layer struct {
	Thickness float64
	Density   float64
	Stiffness float64
}

// LayeredMedium is a stack of layers discretized with step Dx along depth.
// Node i sits at depth i·Dx and inherits the parameters of the layer it
// falls into; depths past the stack use the deepest layer.
type LayeredMedium struct {
	Layers []Layer
	Dx     float64
}

// NewLayeredMedium validates and builds a layered medium.
func NewLayeredMedium(layers []Layer, dx float64) (*LayeredMedium, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	if dx <= 0 {
		return nil, fmt.Errorf("%w: dx = %v", ErrInvalidStep, dx)
	}
	for i, l := range layers {
		if l.Thickness <= 0 || l.Density <= 0 || l.Stiffness <= 0 {
			return nil, fmt.Errorf("%w: layer %d = %+v", ErrInvalidLayer, i, l)
		}
	}
	return &LayeredMedium{
		Layers: append([]Layer(nil), layers...),
		Dx:     dx,
	}, nil
}

// layerAt returns the layer covering the given depth.
func (m *LayeredMedium) layerAt(depth float64) Layer {
	var acc float64
	for _, l := range m.Layers {
		acc += l.Thickness
		if depth < acc {
			return l
		}
	}
	return m.Layers[len(m.Layers)-1]
}

// NumNodes returns the node count of the discretized chain.
func (m *LayeredMedium) NumNodes() int {
	var total float64
	for _, l := range m.Layers {
		total += l.Thickness
	}
	return int(math.Ceil(total / m.Dx))
}

// nodeMasses returns the per-node masses: density at the node depth times
// the element length Dx.
func (m *LayeredMedium) nodeMasses() []float64 {
	n := m.NumNodes()
	masses := make([]float64, n)
	for i := range masses {
		masses[i] = m.layerAt(float64(i)*m.Dx).Density * m.Dx
	}
	return masses
}

// springStiffness returns the stiffness of the n-1 springs between adjacent
// nodes, sampled at the spring midpoints: layer stiffness over Dx.
func (m *LayeredMedium) springStiffness() []float64 {
	n := m.NumNodes()
	springs := make([]float64, n-1)
	for i := range springs {
		springs[i] = m.layerAt((float64(i)+0.5)*m.Dx).Stiffness / m.Dx
	}
	return springs
}

// Chain discretizes the medium into an oscillator chain for modal analysis.
func (m *LayeredMedium) Chain() (*medium.Chain, error) {
	n := m.NumNodes()
	if n < 2 {
		return nil, fmt.Errorf("%w: stack of depth %v discretizes to %d node(s)",
			ErrInvalidStep, m.Dx, n)
	}
	return medium.NewChain(n,
		medium.WithMassProfile(m.nodeMasses()),
		medium.WithCouplingProfile(m.springStiffness()),
	)
}
