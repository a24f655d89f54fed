package medium

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidSize reports a non-positive node count.
	ErrInvalidSize = errors.New("medium: number of oscillators must be at least 1")
	// ErrInvalidMass reports a non-positive mass.
	ErrInvalidMass = errors.New("medium: mass must be positive")
	// ErrInvalidStiffness reports a negative stiffness.
	ErrInvalidStiffness = errors.New("medium: stiffness must be non-negative")
	// ErrInvalidDamping reports a negative damping coefficient.
	ErrInvalidDamping = errors.New("medium: damping must be non-negative")
	// ErrProfileLength reports a per-element parameter profile whose length
	// does not match the chain geometry.
	ErrProfileLength = errors.New("medium: parameter profile length mismatch")
)

// Chain is a linear chain of coupled point masses with fixed ends. Each node
// carries a mass and neighboring nodes are linked by springs; the two end
// nodes are additionally linked to rigid walls.
//
// Scalar-or-profile parameters are resolved at construction into concrete
// per-node and per-link arrays, so assembly has a single uniform code path.
type Chain struct {
	n       int
	gamma   float64
	mass    []float64 // per node, length n
	springs []float64 // per link including both walls, length n+1
}

// ChainOption configures NewChain.
type ChainOption func(*chainConfig)

type chainConfig struct {
	coupling           float64
	couplingProfile    []float64
	hasCouplingProfile bool
	mass               float64
	massProfile        []float64
	hasMassProfile     bool
	damping            float64
}

func defaultChainConfig() chainConfig {
	return chainConfig{coupling: 1, mass: 1}
}

// WithCoupling sets a uniform spring constant for every link, wall links
// included.
func WithCoupling(k float64) ChainOption {
	return func(c *chainConfig) {
		c.coupling = k
		c.couplingProfile = nil
		c.hasCouplingProfile = false
	}
}

// WithCouplingProfile sets per-link spring constants for the n-1 internal
// links. The two wall links replicate the first and last internal value, a
// convention kept for compatibility rather than derived from physics.
// The profile length is validated against the chain geometry in NewChain,
// even for an empty slice.
func WithCouplingProfile(k []float64) ChainOption {
	return func(c *chainConfig) {
		c.couplingProfile = append([]float64(nil), k...)
		c.hasCouplingProfile = true
	}
}

// WithMass sets a uniform node mass.
func WithMass(m float64) ChainOption {
	return func(c *chainConfig) {
		c.mass = m
		c.massProfile = nil
		c.hasMassProfile = false
	}
}

// WithMassProfile sets per-node masses. The profile length is validated
// against the node count in NewChain, even for an empty slice.
func WithMassProfile(m []float64) ChainOption {
	return func(c *chainConfig) {
		c.massProfile = append([]float64(nil), m...)
		c.hasMassProfile = true
	}
}

// WithDamping sets the damping coefficient gamma. Damping is carried for the
// time-stepping consumers and plays no role in the eigen analysis.
func WithDamping(gamma float64) ChainOption {
	return func(c *chainConfig) { c.damping = gamma }
}

// NewChain builds a chain of n oscillators. Defaults are unit coupling, unit
// mass and zero damping. All physical parameters are validated here, never
// deferred: masses must be positive, stiffnesses non-negative, damping
// non-negative.
func NewChain(n int, opts ...ChainOption) (*Chain, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}

	cfg := defaultChainConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.damping < 0 {
		return nil, ErrInvalidDamping
	}

	mass := make([]float64, n)
	if cfg.hasMassProfile {
		if len(cfg.massProfile) != n {
			return nil, fmt.Errorf("%w: %d masses for %d nodes",
				ErrProfileLength, len(cfg.massProfile), n)
		}
		copy(mass, cfg.massProfile)
	} else {
		for i := range mass {
			mass[i] = cfg.mass
		}
	}
	for i, m := range mass {
		if m <= 0 {
			return nil, fmt.Errorf("%w: mass[%d] = %v", ErrInvalidMass, i, m)
		}
	}

	springs := make([]float64, n+1)
	if cfg.hasCouplingProfile {
		if n < 2 || len(cfg.couplingProfile) != n-1 {
			return nil, fmt.Errorf("%w: %d spring constants for %d internal links",
				ErrProfileLength, len(cfg.couplingProfile), n-1)
		}
		copy(springs[1:n], cfg.couplingProfile)
		springs[0] = cfg.couplingProfile[0]
		springs[n] = cfg.couplingProfile[n-2]
	} else {
		for i := range springs {
			springs[i] = cfg.coupling
		}
	}
	for i, k := range springs {
		if k < 0 {
			return nil, fmt.Errorf("%w: link %d has k = %v", ErrInvalidStiffness, i, k)
		}
	}

	return &Chain{n: n, gamma: cfg.damping, mass: mass, springs: springs}, nil
}

// N returns the number of oscillators.
func (c *Chain) N() int { return c.n }

// Damping returns the damping coefficient gamma.
func (c *Chain) Damping() float64 { return c.gamma }

// Masses returns a copy of the resolved per-node masses.
func (c *Chain) Masses() []float64 {
	return append([]float64(nil), c.mass...)
}

// InternalSprings returns a copy of the n-1 internal spring constants,
// excluding the two wall links.
func (c *Chain) InternalSprings() []float64 {
	return append([]float64(nil), c.springs[1:c.n]...)
}

// StiffnessMatrix assembles the symmetric tridiagonal stiffness operator for
// the fixed-end chain. Diagonal entry i is the sum of the two links adjoining
// node i (wall links included); off-diagonal entries are the negated
// connecting spring constants.
func (c *Chain) StiffnessMatrix() *mat.SymDense {
	k := mat.NewSymDense(c.n, nil)
	for i := 0; i < c.n; i++ {
		k.SetSym(i, i, c.springs[i]+c.springs[i+1])
		if i < c.n-1 {
			k.SetSym(i, i+1, -c.springs[i+1])
		}
	}
	return k
}

// MassMatrix returns the diagonal mass operator.
func (c *Chain) MassMatrix() *mat.DiagDense {
	return mat.NewDiagDense(c.n, c.Masses())
}

// Eigenmodes solves K v = ω² M v and returns the eigenfrequencies sorted
// ascending together with the M-orthonormal mode matrix (one mode per
// column).
func (c *Chain) Eigenmodes() ([]float64, *mat.Dense) {
	return solveGeneralized(c.StiffnessMatrix(), c.mass, 0)
}
